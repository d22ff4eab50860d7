package book

import "errors"

// Core failures form a closed set. Callers branch with errors.Is and map each
// kind to a user-facing message; the book itself never logs or terminates.
var (
	// ErrInvalidFormat reports a phone or birthday string that does not match
	// the required format. The previous valid value, if any, is untouched.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNotFound reports an operation referencing a missing contact or phone.
	ErrNotFound = errors.New("not found")
)
