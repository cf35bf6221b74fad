package pogen

import (
	"errors"
	"fmt"
)

// SyntaxError is returned whenever a specification can not be turned into a
// parameter object: malformed grammar, wrong number or type of arguments, or a
// bad option string. Msg is meant to be shown directly to the user.
type SyntaxError struct {
	Msg   string
	Input string // offending raw input, if known
	Err   error  // wrapped error of a failed sub-specification
}

var (
	ErrEmptySelector = errors.New("selector has no values")
	ErrArrayLength   = errors.New("value, time and context arrays must have the same length")
)

// Errorf returns a SyntaxError with a formatted message.
func Errorf(format string, a ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, a...)}
}

func (e *SyntaxError) Error() string {
	msg := e.Msg
	if e.Input != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Input)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// WrapSub wraps the error of a failed sub-specification. If what is not empty,
// it names the argument the sub-specification was given for.
func WrapSub(what string, err error) error {
	if err == nil {
		return nil
	}
	if what == "" {
		return &SyntaxError{Msg: "failed sub-parameter", Err: err}
	}
	return &SyntaxError{Msg: fmt.Sprintf("failed %s sub-parameter", what), Err: err}
}
