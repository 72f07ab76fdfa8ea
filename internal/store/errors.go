package store

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every collection. API and callers branch on
// these with errors.Is.
var (
	ErrNotFound     = errors.New("record not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPersistence marks recoverable storage failures; matched via
	// errors.Is against *PersistenceError.
	ErrPersistence = errors.New("persistence failure")

	// ErrSelfDelete refuses removing the acting admin's own account.
	ErrSelfDelete = fmt.Errorf("%w: cannot delete own account", ErrValidation)
)

// PersistenceError wraps a backend or codec failure for one collection
// operation. It is always recoverable: the in-memory state is left as
// it was before the failed operation.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
