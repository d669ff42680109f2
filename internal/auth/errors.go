package auth

import "fmt"

// ValidationError reports malformed or conflicting input: bad identity
// format, duplicate identity, or a wrong confirmation code. It is always
// surfaced to the caller with its message and never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotifyError reports that the account and its confirmation code were
// processed but dispatching the code failed. Callers surface this as a
// delivery failure rather than pretending the code was sent.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string { return "confirmation dispatch failed: " + e.Err.Error() }
func (e *NotifyError) Unwrap() error { return e.Err }
