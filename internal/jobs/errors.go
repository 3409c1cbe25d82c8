package jobs

import "errors"

var (
	// ErrNotFound indicates the job posting does not exist.
	ErrNotFound = errors.New("job posting not found")
	// ErrInvalidInput indicates missing or malformed input.
	ErrInvalidInput = errors.New("invalid input")
)
