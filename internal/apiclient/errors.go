package apiclient

import (
	"fmt"
	"net/http"
)

// ResponseError is returned when the server answered with a status >= 400.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	// Message is the server supplied error text, if any.
	Message string
	Code    string
}

func (e *ResponseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, msg)
}

// NetworkError is returned when a request was sent but no response arrived,
// including timeouts.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: no response: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// SetupError is returned when a request could not be built.
type SetupError struct {
	Method string
	URL    string
	Err    error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s %s: request setup failed: %v", e.Method, e.URL, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// DecodeError is returned when a successful response body could not be
// decoded into the caller's value.
type DecodeError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: %d response could not be decoded: %v", e.Method, e.URL, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
