package mmap

import "errors"

var (
	// ErrUnmapped is returned when accessing the invalid View.
	ErrUnmapped = errors.New("mmap: region is not mapped")
	// ErrOutOfBounds is returned when attempting to access a region outside the mapping.
	ErrOutOfBounds = errors.New("mmap: out of bounds")
	// ErrInvalidOffset is returned when the offset is invalid (e.g. negative).
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
