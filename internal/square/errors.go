package square

import "fmt"

type ErrorCode string

const (
	ErrCredentialsMissing ErrorCode = "SQUARE_CREDENTIALS_MISSING"
	ErrUpstream           ErrorCode = "SQUARE_UPSTREAM_ERROR"
)

// Error is the single error shape the client surfaces. Status holds
// the upstream HTTP status for ErrUpstream and is 0 for config
// failures; Body carries the upstream response text for diagnostics.
type Error struct {
	Code    ErrorCode
	Message string
	Status  int
	Body    string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func configError(message string) *Error {
	return &Error{Code: ErrCredentialsMissing, Message: message}
}

func upstreamError(status int, body string) *Error {
	return &Error{
		Code:    ErrUpstream,
		Message: "square api request failed",
		Status:  status,
		Body:    body,
	}
}
