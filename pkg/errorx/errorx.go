// Package errorx defines coded errors shared by every layer of the
// server. Repositories wrap driver errors into CodeError values, services
// add their own codes, and the HTTP/websocket boundary turns the code
// into a response without inspecting error strings.
package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error carrying a business code. It supports %w-style
// wrapping so errors.Is/errors.As can see through it.
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError with no underlying cause.
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg, cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...), cause: err}
}

// GetCode extracts the business code from an error chain. Unknown errors
// map to CodeInternal.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeInternal
}

// Business codes. The realtime engine distinguishes authentication,
// authorization, destination validation, missing entities, unique-row
// conflicts and retryable store/broadcast failures.
const (
	CodeSuccess            = 1000
	CodeInvalidParam       = 1001
	CodeUserExist          = 1002
	CodeUserNotExist       = 1003
	CodeInvalidPassword    = 1004
	CodeInternal           = 1005
	CodeUnauthorized       = 1006
	CodeUnauthenticated    = 1007
	CodeNotFound           = 1008
	CodeConflict           = 1009
	CodeDBError            = 1010
	CodeCacheError         = 1011
	CodeInvalidDestination = 1012
	CodeTransient          = 1013
	CodePaymentRequired    = 1014
)

// Predefined instances for the common cases; usable directly or with
// errors.Is.
var (
	ErrInvalidParam    = New(CodeInvalidParam, "invalid request parameters")
	ErrInternal        = New(CodeInternal, "internal server error")
	ErrUnauthenticated = New(CodeUnauthenticated, "authentication required")
)

// IsNotFound reports whether the error chain represents a missing row.
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}

// IsConflict reports whether the error chain represents a duplicate
// unique-constrained row.
func IsConflict(err error) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == CodeConflict
}
