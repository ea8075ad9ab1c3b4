package imgio

import (
	"errors"
	"fmt"
)

// ErrSVGUnsupported is returned when saving with the SVG format.
var ErrSVGUnsupported = &EncodeError{Err: errors.New("writing to svg unsupported")}

// DecodeError is returned for malformed or unsupported source bytes.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unable to decode image: %v", e.Err)
	}
	return fmt.Sprintf("unable to decode %s image: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseError is returned for malformed SVG documents.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse svg: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError wraps a failure to open, read or write a file or sink.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when an encoder fails or the output format cannot be written.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func encodeErrorf(format string, a ...interface{}) error {
	return &EncodeError{Err: fmt.Errorf(format, a...)}
}
