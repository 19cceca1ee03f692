package expr

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrUnknownName    = errors.New("unknown name")
	ErrEmptyDomain    = errors.New("expression has no valid sample point")
	ErrBudgetExceeded = errors.New("domain check exceeded time budget")
)

// SyntaxError reports where parsing failed.
type SyntaxError struct {
	Input string // Expression being parsed
	Pos   int    // Byte offset of the offending token
	Msg   string // What the parser expected
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d in %q: %s", e.Pos, e.Input, e.Msg)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
