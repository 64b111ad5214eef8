package payment

import "fmt"

// InitError reports a failed transaction initialization, carrying the
// gateway's own message for operator logs.
type InitError struct {
	Reference  string
	StatusCode int
	Message    string
	cause      error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("payment initialize %s: status=%d message=%q", e.Reference, e.StatusCode, e.Message)
}

func (e *InitError) Unwrap() error { return e.cause }

// VerifyError reports a failed transaction verification.
type VerifyError struct {
	Reference  string
	StatusCode int
	Message    string
	cause      error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("payment verify %s: status=%d message=%q", e.Reference, e.StatusCode, e.Message)
}

func (e *VerifyError) Unwrap() error { return e.cause }
