// Package errors defines the failures of the marketplace service and how
// they surface over HTTP.
//
// Every error carries a code (see codes.go). Request problems are
// ValidationError and NotFoundError; dependency problems are SubgraphError,
// StoreError and TimeoutError. Untyped errors are reported as CodeInternal.
package errors

import (
	"fmt"
	"strconv"
	"time"
)

// Error is implemented by every error type in this package.
type Error interface {
	error
	Code() string
	Message() string
}

type base struct {
	code    string
	message string
	cause   error
}

func (e *base) Code() string    { return e.code }
func (e *base) Message() string { return e.message }
func (e *base) Unwrap() error   { return e.cause }

func (e *base) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// ValidationError rejects one request field.
type ValidationError struct {
	*base
	Field string
	Value any
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string, value any) *ValidationError {
	return &ValidationError{
		base:  &base{code: CodeValidation, message: message},
		Field: field,
		Value: value,
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.message)
}

func (e *ValidationError) details() map[string]string {
	if e.Field == "" {
		return nil
	}
	return map[string]string{"field": e.Field}
}

// NotFoundError reports a lookup with no result.
type NotFoundError struct {
	*base
	Resource string
	ID       string
}

// NewNotFoundError creates a not found error for resource id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		base:     &base{code: CodeNotFound, message: resource + " not found"},
		Resource: resource,
		ID:       id,
	}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.message
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) details() map[string]string {
	d := map[string]string{"resource": e.Resource}
	if e.ID != "" {
		d["id"] = e.ID
	}
	return d
}

// SubgraphError is a failed subgraph call. Status is the HTTP status of the
// response, zero when none was received.
type SubgraphError struct {
	*base
	URL    string
	Status int
}

// NewSubgraphError reports a subgraph that was unreachable or answered with
// a non-2xx status or a body that is not a GraphQL response.
func NewSubgraphError(url string, status int, message string, cause error) *SubgraphError {
	return &SubgraphError{
		base:   &base{code: CodeSubgraphUnavailable, message: message, cause: cause},
		URL:    url,
		Status: status,
	}
}

// NewSubgraphRejection reports a GraphQL response whose "errors" member is
// not empty. cause holds the GraphQL errors.
func NewSubgraphRejection(url string, status int, cause error) *SubgraphError {
	return &SubgraphError{
		base:   &base{code: CodeSubgraphRejected, message: "subgraph rejected query", cause: cause},
		URL:    url,
		Status: status,
	}
}

func (e *SubgraphError) Error() string {
	return "subgraph " + e.URL + ": " + e.base.Error()
}

func (e *SubgraphError) details() map[string]string {
	if e.Status == 0 {
		return nil
	}
	return map[string]string{"upstream_status": strconv.Itoa(e.Status)}
}

// StoreError is a failed operation on a registry store backend.
type StoreError struct {
	*base
	Backend string
	Op      string
}

// NewStoreError wraps cause, the failure of op ("get", "put", "health") on
// backend ("olric", "sqlite3", "rqlite").
func NewStoreError(backend, op string, cause error) *StoreError {
	return &StoreError{
		base:    &base{code: CodeStoreUnavailable, message: fmt.Sprintf("%s store %s failed", backend, op), cause: cause},
		Backend: backend,
		Op:      op,
	}
}

func (e *StoreError) details() map[string]string {
	return map[string]string{"backend": e.Backend, "op": e.Op}
}

// TimeoutError reports an operation cut off after a deadline.
type TimeoutError struct {
	*base
	Operation string
	After     time.Duration
}

// NewTimeoutError creates a timeout error. after may be zero when the
// deadline came from the caller's context.
func NewTimeoutError(operation string, after time.Duration, cause error) *TimeoutError {
	return &TimeoutError{
		base:      &base{code: CodeTimeout, message: operation + " timed out", cause: cause},
		Operation: operation,
		After:     after,
	}
}

func (e *TimeoutError) details() map[string]string {
	d := map[string]string{"operation": e.Operation}
	if e.After > 0 {
		d["after"] = e.After.String()
	}
	return d
}
