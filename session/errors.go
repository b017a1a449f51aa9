package session

import (
	"errors"
	"fmt"
)

// Code is a stable identifier for a failure kind raised by this package.
// Callers branch on codes, never on message text.
type Code string

const (
	// CodeInvalidSubject - the subject claim was empty at derivation time.
	CodeInvalidSubject Code = "session/invalid-subject"
	// CodeMissingIdentifier - destroy was called with an empty session id.
	CodeMissingIdentifier Code = "session/missing-identifier"
	// CodeInvalidSessionID - destroy was called with a structurally invalid
	// session id; the store was not touched.
	CodeInvalidSessionID Code = "session/invalid-session-id"
	// CodeSessionNotFound - no record exists for the supplied session id.
	CodeSessionNotFound Code = "session/not-found"
	// CodeCorruptSession - a stored record could not be deserialized.
	CodeCorruptSession Code = "session/corrupt-record"
	// CodeStoreUnavailable - the underlying store call failed.
	CodeStoreUnavailable Code = "session/store-unavailable"
)

// Error is the structured failure type raised by the session subsystem. Op
// names the operation that failed, Title is a short human label for the kind
// & Detail carries the specifics of this occurrence.
type Error struct {
	Code   Code
	Op     string
	Title  string
	Detail string
	cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v: %v", e.Op, e.Code, e.Detail)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(code Code, op, title, detail string, cause error) *Error {
	return &Error{
		Code:   code,
		Op:     op,
		Title:  title,
		Detail: detail,
		cause:  cause,
	}
}

// IsCode reports whether err is (or wraps) a session Error with the supplied
// code.
func IsCode(err error, code Code) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == code
}
