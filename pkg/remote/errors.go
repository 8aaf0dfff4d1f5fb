package remote

import (
	"errors"
	"fmt"
)

// ErrNotDispatchable is reported by calls that have nothing to execute.
var ErrNotDispatchable = errors.New("remote: call has no request to dispatch")

// ErrorResponse is the failure value of a call whose server answered with a
// status outside 2xx. DetailMessage is "" when the body carries no message.
type ErrorResponse struct {
	StatusCode    int
	URL           string
	DetailMessage string
}

func (e *ErrorResponse) Error() string {
	if e.DetailMessage == "" {
		return fmt.Sprintf("remote: %s: http status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("remote: %s: http status %d: %s", e.URL, e.StatusCode, e.DetailMessage)
}

// TransportError is the failure value of a call that got no HTTP response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
