package domain

import "errors"

// Error kinds shared by every layer. Callers wrap them with context and
// branch on them with errors.Is.
var (
	// ErrValidation marks bad input: a value of the wrong type, a missing
	// column, an unknown colouring field.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a required resource (in practice a data file) that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSerialization marks data that could not be decoded, reprojected or
	// encoded.
	ErrSerialization = errors.New("serialization error")
)
