package webhook

import "fmt"

// UnknownMessage is used when a failed response carries no readable
// message field.
const UnknownMessage = "Unknown error"

// TransportError reports a network failure, a non-2xx response or an
// unreadable success body. StatusCode is zero when no response arrived.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "webhook: <nil>"
	}
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("webhook: post %s: %v", e.Endpoint, e.Err)
		}
		return fmt.Sprintf("webhook: post %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("HTTP error! status: %d, message: %s", e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HasStatus reports whether the endpoint answered at all.
func (e *TransportError) HasStatus() bool {
	return e != nil && e.StatusCode != 0
}
