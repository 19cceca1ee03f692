package expr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteFunctions writes one expression per line.
func WriteFunctions(w io.Writer, exprs []string) error {
	bw := bufio.NewWriter(w)
	for _, e := range exprs {
		if _, err := bw.WriteString(e + "\n"); err != nil {
			return fmt.Errorf("failed to write expression: %w", err)
		}
	}
	return bw.Flush()
}

// ReadFunctions reads one expression per line.
// Blank lines and lines starting with # are skipped.
func ReadFunctions(r io.Reader) ([]string, error) {
	var exprs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expressions: %w", err)
	}
	return exprs, nil
}
