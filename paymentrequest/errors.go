package paymentrequest

import "fmt"

// Error reports a payment request that is structurally or semantically
// invalid and should be rejected.
type Error struct {
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Cause }

// PKIError reports a signed payment request whose signature or certificate
// chain could not be verified. Callers may still show the request with a
// warning.
type PKIError struct {
	Reason string
	Cause  error
}

func (e *PKIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *PKIError) Unwrap() error { return e.Cause }

func invalid(reason string, cause error) error {
	return &Error{Reason: reason, Cause: cause}
}
