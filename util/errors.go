package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Configuration errors: non-positive chunk size or width, unknown byte
	// order, or a shape whose directory names would not fit on disk.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Any read, write, open or mkdir failure on the underlying storage.
	ErrIOFailure = errors.New("i/o failure")

	// A directory name does not match the pattern expected at its level.
	ErrMalformedName = errors.New("malformed directory name")

	// The tree shape is not one the encoder produces: wrong root entries,
	// a branching chain, or a regular file where a directory belongs.
	ErrMalformedTree = errors.New("malformed tree")

	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")
)
