package harvard

import (
	"errors"
	"fmt"
)

// ErrUnsupportedResponse means no registered endpoint produces the requested
// response kind. It indicates a wiring defect, not a runtime condition.
var ErrUnsupportedResponse = errors.New("no endpoint supports the requested response")

var errMissingField = errors.New("required field missing")

// DecodingError reports a malformed or incomplete response body.
type DecodingError struct {
	Path string // JSON path of the offending field, empty for syntax errors
	Err  error
}

func (e *DecodingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode response: %v", e.Err)
	}
	return fmt.Sprintf("decode response: %s: %v", e.Path, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// TransportError reports a network-level failure, a timeout or an open
// circuit breaker.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("execute request: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError reports a non-success HTTP status.
type ServerError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Body)
}

// RequestError wraps every FetchPage failure with the page that was asked for.
type RequestError struct {
	Page int
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsDecoding reports whether err carries a *DecodingError.
func IsDecoding(err error) bool {
	var target *DecodingError
	return errors.As(err, &target)
}

// IsTransport reports whether err carries a *TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsServer reports whether err carries a *ServerError.
func IsServer(err error) bool {
	var target *ServerError
	return errors.As(err, &target)
}
