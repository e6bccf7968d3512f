package escher

import (
	"errors"
	"fmt"
)

// NetworkError is a transport-level failure: the request could not be built
// or sent, or the response body could not be read. It is never retried here.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("escher %s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means the response body matched neither the expected success
// shape nor the structured error shape. Err is the success-shape failure.
type DecodeError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("escher %s: unexpected response (status %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError is a structured business rejection, e.g. an expired quote or an
// insufficient balance. Message is the server's text, verbatim.
type APIError struct {
	Op         string
	StatusCode int
	Success    bool
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("escher %s: %s", e.Op, e.Message)
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsDecodeError reports whether err's chain contains a DecodeError.
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}

// IsNetworkError reports whether err's chain contains a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
