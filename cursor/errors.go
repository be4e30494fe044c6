package cursor

import (
	"errors"
	"fmt"
)

// Failure classes of a single invocation. All of them are fatal for the call
// that produced them.
var (
	ErrUnknownCursorKind   = errors.New("unknown cursor kind")
	ErrUnsupportedSelector = errors.New("unsupported selector, only classes and ids are allowed")
	ErrNoCursorRules       = errors.New("no selectors with a cursor property")
	ErrEmptyStylesheet     = errors.New("no cursor rules to write")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrIO                  = errors.New("i/o failure")
)

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s '%s'", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s '%s': %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
