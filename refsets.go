package refsets

import (
	"fmt"

	"github.com/pkg/errors"
)

// --- Error codes -----------------------------------------------------------

// ErrorCode is a category for errors reported by the packages of this module.
// All of them signal programmer errors, i.e. bad input, never an environmental
// failure. There is nothing to retry.
type ErrorCode int

// Error categories.
const (
	NoError          ErrorCode = iota
	InvalidArgument            // malformed construction or range parameters
	InvalidOperation           // operation not valid in current state
	InternalError              // invariant violation; unreachable in correct code
	NotSupported               // operation not supported by this kind of collection
	Uninitialized              // entity has not been set up
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "NoError"
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidOperation:
		return "InvalidOperation"
	case InternalError:
		return "InternalError"
	case NotSupported:
		return "NotSupported"
	case Uninitialized:
		return "Uninitialized"
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is the error type of this module. Errors compare equal with
// errors.Is if their codes match, so clients may test
//
//	if errors.Is(err, refsets.ErrInvalidArgument) { … }
type Error struct {
	Code ErrorCode
	msg  string
}

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidArgument  = &Error{Code: InvalidArgument}
	ErrInvalidOperation = &Error{Code: InvalidOperation}
	ErrInternal         = &Error{Code: InternalError}
	ErrNotSupported     = &Error{Code: NotSupported}
	ErrUninitialized    = &Error{Code: Uninitialized}
)

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.msg
}

// Is lets errors.Is match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Errorf creates an error of category code with a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) error {
	return &Error{Code: code, msg: fmt.Sprintf(format, args...)}
}

// Internal creates an InternalError, annotated with the call stack of its
// creation. Internal errors indicate a broken invariant.
func Internal(format string, args ...interface{}) error {
	return errors.WithStack(Errorf(InternalError, format, args...))
}

// CodeOf returns the error code of err, unwrapping as necessary.
// Errors not created by this module are reported as InternalError,
// nil as NoError.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return NoError
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}
