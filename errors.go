// Package foamcut holds the error kinds shared by the foam-cutter
// G-code pipeline. Each kind carries a numeric code that the host
// binary uses as its process exit status.
package foamcut

import (
	"errors"
	"fmt"
)

// Code identifies an error kind. Codes are part of the host contract
// and must stay stable.
type Code int

const (
	// CodeIOFailure means reading or writing a file failed.
	CodeIOFailure Code = 1
	// CodeUnrecognizedElement means the input document contained
	// content that cannot be converted to cutting contours.
	CodeUnrecognizedElement Code = 2
	// CodeInvalidPath means a contour failed the closure check or a
	// tool path was requested from a non-closed path.
	CodeInvalidPath Code = 3
)

// Error is a pipeline failure with a stable numeric code.
type Error struct {
	Code Code
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// IOFailure reports a failed file operation.
func IOFailure(filename string, err error) *Error {
	return &Error{Code: CodeIOFailure, Msg: fmt.Sprintf("error while operating on file %v", filename), Err: err}
}

// UnrecognizedElement reports input content that cannot be converted.
func UnrecognizedElement(what string, err error) *Error {
	return &Error{Code: CodeUnrecognizedElement, Msg: fmt.Sprintf("unrecognized input element: %v", what), Err: err}
}

// InvalidPath reports a contour that cannot be used for cutting.
func InvalidPath(reason string) *Error {
	return &Error{Code: CodeInvalidPath, Msg: fmt.Sprintf("invalid cutting path: %v", reason)}
}

// ExitCode maps an error to the process exit status the host should
// use: 0 for nil, the kind's code for pipeline errors, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return int(e.Code)
	}
	return 1
}
