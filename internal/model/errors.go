package model

import (
	"errors"
	"fmt"
)

// ErrCardNotFound is returned when a mutation targets an id with no row.
var ErrCardNotFound = errors.New("card not found")

// StoreError reports a failure of the backing store. It is fatal for the
// caller; nothing retries it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError reports card content rejected before it reached the store.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	if e.Rule == "" || e.Rule == "required" {
		return fmt.Sprintf("%s must not be empty", e.Field)
	}
	return fmt.Sprintf("%s failed %q check", e.Field, e.Rule)
}
