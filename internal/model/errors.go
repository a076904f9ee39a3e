package model

import (
	"errors"
	"fmt"
)

// Error classes. Concrete error types below unwrap to one of these so
// callers can classify with errors.Is without knowing the concrete type.
var (
	// ErrInvalidInput marks malformed caller input (400-class).
	ErrInvalidInput = errors.New("comptrack: invalid input")

	// ErrNotFound marks a requested entity that is absent (404-class).
	ErrNotFound = errors.New("comptrack: not found")

	// ErrReferenceNotFound marks a foreign id embedded in a write that
	// points at nothing (400/404-class). The write must not happen.
	ErrReferenceNotFound = errors.New("comptrack: reference not found")

	// ErrStore marks an underlying store failure (5xx-class). Never
	// retried, propagated as-is.
	ErrStore = errors.New("comptrack: store failure")
)

// InputError is a malformed or missing field in caller input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input for %q: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// ReferenceError reports a foreign id that does not reference an
// existing entity at write time.
type ReferenceError struct {
	Field string
	ID    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references nonexistent entity %q", e.Field, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrReferenceNotFound }

// CursorError reports a continuation token that could not be decoded.
type CursorError struct {
	Cause error
}

func (e *CursorError) Error() string {
	return fmt.Sprintf("malformed cursor: %v", e.Cause)
}

func (e *CursorError) Unwrap() error { return ErrInvalidInput }

// StoreError wraps a failure from the underlying key-value store.
type StoreError struct {
	Op    string
	Table string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s on %s: %v", e.Op, e.Table, e.Cause)
}

func (e *StoreError) Unwrap() error { return ErrStore }
