package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an input has a malformed or
	// unexpected shape (wrong variant, bad record, negative size).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds is returned when a core id or coordinate falls outside
	// the active mesh shape.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrNotFound is returned when a buffer id is absent from the registry.
	ErrNotFound = errors.New("not found")

	// ErrShardInfoMissing is returned by shard location when no mesh tensor
	// metadata exists for the buffer being narrowed. Kept distinct from
	// ErrNotFound because the message must identify the buffer.
	ErrShardInfoMissing = errors.New("mesh tensor info missing")

	// ErrArityMismatch is returned when a mesh coordinate's length does not
	// match the registered block shape's rank.
	ErrArityMismatch = errors.New("arity mismatch")
)

// ShardInfoMissingError reports a shard-relative operation on a buffer that
// was never annotated with mesh tensor metadata.
type ShardInfoMissingError struct {
	Buffer BufferID
}

// Error implements the error interface.
func (e *ShardInfoMissingError) Error() string {
	return fmt.Sprintf("mesh tensor info for buffer %q not found", e.Buffer)
}

// Unwrap exposes ErrShardInfoMissing for errors.Is checks.
func (e *ShardInfoMissingError) Unwrap() error { return ErrShardInfoMissing }

// ArityMismatchError reports a mesh coordinate whose length disagrees with
// the registered block shape. It matches both ErrArityMismatch and
// ErrInvalidArgument under errors.Is.
type ArityMismatchError struct {
	Buffer BufferID
	Want   int
	Got    int
}

// Error implements the error interface.
func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("coordinate for buffer %q has %d axes, block shape has %d", e.Buffer, e.Got, e.Want)
}

// Unwrap exposes both sentinel matches.
func (e *ArityMismatchError) Unwrap() []error {
	return []error{ErrArityMismatch, ErrInvalidArgument}
}
