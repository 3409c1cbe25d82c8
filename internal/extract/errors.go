package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file extensions the extractor does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrNoText is returned when a document yields only whitespace.
	ErrNoText = errors.New("no text could be extracted")
)

// ExtractionError wraps a failure to pull text from a document. Format is the
// lowercased extension the extractor dispatched on.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func failed(format string, err error) error {
	return &ExtractionError{Format: format, Err: err}
}
