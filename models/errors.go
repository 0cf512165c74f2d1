package models

import (
	"errors"
	"fmt"
)

// ValidationError is returned before any network call when a query field
// required for the request is missing or invalid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NetworkError wraps a transport-level failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError is a non-2xx answer from the upstream API.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream returned %s", e.Status)
}

// MalformedResponseError means the payload lacked the expected fields.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + e.Reason
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNetwork(err error) bool {
	var v *NetworkError
	return errors.As(err, &v)
}

func IsHTTPStatus(err error) bool {
	var v *HTTPStatusError
	return errors.As(err, &v)
}

func IsMalformed(err error) bool {
	var v *MalformedResponseError
	return errors.As(err, &v)
}
