package faostat

import "errors"

var (
	// ErrFileNotFound is returned when the input path does not resolve to a
	// readable file.
	ErrFileNotFound = errors.New("file not found")

	// ErrMalformedInput covers CSV syntax errors, missing required columns
	// and cells that do not parse.
	ErrMalformedInput = errors.New("malformed input")
)
