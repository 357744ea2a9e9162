package parser

import (
	"errors"
	"fmt"
)

// ErrConsumed is returned when Run is called on a parser that already ran.
var ErrConsumed = errors.New("parser already consumed")

// InputError reports that the input file could not be opened.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("open input %q: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// DecodeError reports a single record that could not be decoded.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
