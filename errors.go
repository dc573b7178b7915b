package docmodel

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is matched by every UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("docmodel: unsupported file format")

// UnsupportedFormatError reports a file type with no registered reader.
// No bytes are read when it is returned.
type UnsupportedFormatError struct {
	FileType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("docmodel: unsupported file format %q", e.FileType)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) true.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseError wraps a failure of the object model or of extraction.
type ParseError struct {
	FileType string
	FileName string
	Err      error
}

func (e *ParseError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("docmodel: parsing %s: %v", e.FileType, e.Err)
	}
	return fmt.Sprintf("docmodel: parsing %s file %q: %v", e.FileType, e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
