package facet

import (
	"errors"
	"fmt"
)

var (
	// ErrIOFailure reports a source that could not be opened or read.
	ErrIOFailure = errors.New("io failure")
	// ErrMalformedRecord reports a vertex record without exactly three
	// coordinates or a face index that is zero or out of range.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInternal reports disagreement between the sizing and parse passes.
	ErrInternal = errors.New("internal consistency failure")
)

// LoadError is returned by every Load variant.
type LoadError struct {
	Kind error
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	msg := "load error"
	if e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Is(target error) bool {
	return target == e.Kind
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func ioFailure(path string, err error) error {
	return &LoadError{Kind: ErrIOFailure, Path: path, Err: err}
}

func malformed(line int, format string, args ...interface{}) error {
	return &LoadError{Kind: ErrMalformedRecord, Line: line, Err: fmt.Errorf(format, args...)}
}
