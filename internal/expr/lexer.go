package expr

import (
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow // ** or ^
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lex splits the input into tokens.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", pos: i})
			i++
		case c == '*':
			if i+1 < len(input) && input[i+1] == '*' {
				toks = append(toks, token{kind: tokPow, text: "**", pos: i})
				i += 2
				continue
			}
			toks = append(toks, token{kind: tokStar, text: "*", pos: i})
			i++
		case c == '^':
			toks = append(toks, token{kind: tokPow, text: "^", pos: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case isDigit(c) || c == '.':
			end := scanNumber(input, i)
			v, err := strconv.ParseFloat(input[i:end], 64)
			if err != nil {
				return nil, &SyntaxError{Input: input, Pos: i, Msg: "malformed number " + strconv.Quote(input[i:end])}
			}
			toks = append(toks, token{kind: tokNumber, text: input[i:end], num: v, pos: i})
			i = end
		case unicode.IsLetter(rune(c)) || c == '_':
			start := i
			for i < len(input) && (unicode.IsLetter(rune(input[i])) || isDigit(input[i]) || input[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], pos: start})
		default:
			return nil, &SyntaxError{Input: input, Pos: i, Msg: "unexpected character " + strconv.QuoteRune(rune(c))}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

// scanNumber returns the end offset of the number literal starting at i.
// An exponent is only consumed when digits follow it.
func scanNumber(s string, i int) int {
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			return j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
