package types

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// ErrTransport: RPC unreachable, rejected or malformed response
	ErrTransport ErrorCode = "TRANSPORT"
	// ErrConversion: an on-chain decimal or amount cannot be converted to a number
	ErrConversion ErrorCode = "CONVERSION"
	// ErrOptimizationFailure: the solver did not converge to a feasible optimum
	ErrOptimizationFailure ErrorCode = "OPTIMIZATION_FAILURE"
	// ErrIntegrity: post-claim balance is lower than pre-claim balance
	ErrIntegrity ErrorCode = "INTEGRITY"
	// ErrEmptyInput: a mean or sum was requested over an empty sample set
	ErrEmptyInput ErrorCode = "EMPTY_INPUT"
)

func (c ErrorCode) String() string {
	return string(c)
}

// Error is a categorized cycle error. Two errors match under errors.Is when
// their codes are equal.
type Error struct {
	Code ErrorCode
	Err  error
}

func NewError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}

func NewErrorWithMsg(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsErrorCode reports whether err, or any error it wraps, carries the code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}
