package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrConflict signals that a note already exists at the target path.
	// The failed operation has no effect on the store.
	ErrConflict = errors.New("note already exists")

	// ErrTemplateNotFound signals that a template name did not resolve.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNotWatchable signals that the store does not support watching.
	ErrNotWatchable = errors.New("store does not support watching")
)

// ReadError wraps a store read failure. It is surfaced unchanged to the
// caller; operations are never retried.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a store write failure.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
