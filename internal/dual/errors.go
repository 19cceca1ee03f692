package dual

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("argument outside function domain")
)

// OpError records the operation and the offending value of a failed operation.
type OpError struct {
	Op    string  // Operation name (e.g., "div", "log")
	Value float64 // Value that violated the operation's precondition
	Err   error   // ErrDivisionByZero or ErrDomain
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("dual %s: %v (at %g)", e.Op, e.Err, e.Value)
}

// Unwrap returns the underlying sentinel error.
func (e *OpError) Unwrap() error {
	return e.Err
}

func divByZero[T Float](op string, v T) error {
	return &OpError{Op: op, Value: float64(v), Err: ErrDivisionByZero}
}

func domainErr[T Float](op string, v T) error {
	return &OpError{Op: op, Value: float64(v), Err: ErrDomain}
}
