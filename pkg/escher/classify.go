package escher

import (
	"encoding/json"
	"fmt"
)

// classify turns a buffered response body into exactly one of: a typed
// success value, an *APIError, or a *DecodeError.
//
// Escher answers business rejections with the same status as successes, so
// the body shape is the only signal. The success probe runs first: the error
// shape's keys are a subset of AcceptQuote's and would otherwise match early.
func classify[T any](op string, status int, body []byte, decode func(doc json.RawMessage) (T, error)) (T, error) {
	var zero T

	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return zero, &DecodeError{Op: op, StatusCode: status, Body: body, Err: fmt.Errorf("invalid json: %w", err)}
	}

	v, successErr := decode(doc)
	if successErr == nil {
		return v, nil
	}

	if apiErr, err := decodeErrorShape(doc); err == nil {
		apiErr.Op = op
		apiErr.StatusCode = status
		return zero, apiErr
	}

	return zero, &DecodeError{Op: op, StatusCode: status, Body: body, Err: successErr}
}
