package resumes

import "errors"

var (
	// ErrNotFound indicates the resume does not exist.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalidInput indicates missing or malformed input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrParseFailed indicates the structured parse was abandoned; partial
	// results are never returned alongside it.
	ErrParseFailed = errors.New("resume parsing failed")
	// ErrTextLength indicates extracted text fell outside the accepted range.
	ErrTextLength = errors.New("extracted text length out of range")
)
