package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	refused := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation with field", NewValidationError("first", "must not exceed 1000", 2000), "invalid first: must not exceed 1000"},
		{"validation without field", NewValidationError("", "empty body", nil), "invalid request: empty body"},
		{"not found", NewNotFoundError("contract", "0xabc"), "contract 0xabc not found"},
		{"not found without id", NewNotFoundError("route", ""), "route not found"},
		{"subgraph", NewSubgraphError("http://indexer/matic", 0, "subgraph request failed", refused), "subgraph http://indexer/matic: subgraph request failed: connection refused"},
		{"store", NewStoreError("olric", "put", refused), "olric store put failed: connection refused"},
		{"timeout", NewTimeoutError("subgraph query", 15*time.Second, nil), "subgraph query timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCausesUnwrap(t *testing.T) {
	refused := errors.New("connection refused")

	for _, err := range []error{
		NewSubgraphError("u", 0, "failed", refused),
		NewSubgraphRejection("u", 200, refused),
		NewStoreError("rqlite", "get", refused),
		NewTimeoutError("store get", 0, refused),
		fmt.Errorf("refresh chain 137: %w", NewStoreError("sqlite3", "put", refused)),
	} {
		if !errors.Is(err, refused) {
			t.Errorf("%v does not unwrap to its cause", err)
		}
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", NewValidationError("owner", "invalid address", "0x1"), CodeValidation},
		{"not found", NewNotFoundError("contract", "0x1"), CodeNotFound},
		{"unreachable subgraph", NewSubgraphError("u", 0, "failed", nil), CodeSubgraphUnavailable},
		{"rejected query", NewSubgraphRejection("u", 200, nil), CodeSubgraphRejected},
		{"store", NewStoreError("olric", "get", nil), CodeStoreUnavailable},
		{"wrapped store", fmt.Errorf("chain 1: %w", NewStoreError("olric", "get", nil)), CodeStoreUnavailable},
		{"timeout", NewTimeoutError("subgraph query", time.Second, nil), CodeTimeout},
		{"context deadline", fmt.Errorf("discover: %w", context.DeadlineExceeded), CodeTimeout},
		{"plain", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unreachable subgraph", NewSubgraphError("u", 502, "subgraph returned status 502", nil), true},
		{"rejected query", NewSubgraphRejection("u", 200, nil), false},
		{"store", NewStoreError("rqlite", "put", nil), true},
		{"timeout", NewTimeoutError("subgraph query", time.Second, nil), true},
		{"context deadline", context.DeadlineExceeded, true},
		{"validation", NewValidationError("first", "must be positive", -1), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(NewTimeoutError("subgraph query", time.Second, nil)) {
		t.Error("TimeoutError should be a timeout")
	}
	if !IsTimeout(fmt.Errorf("page 2: %w", context.DeadlineExceeded)) {
		t.Error("a wrapped context deadline should be a timeout")
	}
	if IsTimeout(NewSubgraphError("u", 0, "failed", nil)) {
		t.Error("SubgraphError is not a timeout")
	}
	if IsTimeout(nil) {
		t.Error("nil is not a timeout")
	}
}

func TestHTTPStatusPerCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeSubgraphUnavailable, http.StatusBadGateway},
		{CodeSubgraphRejected, http.StatusBadGateway},
		{CodeStoreUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := httpStatus(tt.code); got != tt.want {
			t.Errorf("httpStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
