package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports a rejected field value. It is expected control flow:
// handlers surface its message to the user verbatim.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s (field: %s, value: %v)", e.Message, e.Field, e.Value)
	}
	return fmt.Sprintf("%s (field: %s)", e.Message, e.Field)
}

// NotFoundError reports an absent user, shopping list, or item.
type NotFoundError struct {
	Resource string // "user", "shopping list" or "item"
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// StoreError wraps a failure from the document store, carrying the operation
// name and the identifier it was keyed on. "Not found" is never a StoreError.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s (key=%s): %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ConnectionError reports an unreachable document store. Timeout distinguishes
// a server selection timeout from an outright connection failure.
type ConnectionError struct {
	Timeout bool
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("could not reach document store (server selection timed out): %v", e.Err)
	}
	return fmt.Sprintf("failed to connect to document store: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
