package errors

import (
	"context"
	"errors"
)

// CodeOf returns the code of the first Error in err's chain. A bare context
// deadline is CodeTimeout and anything else CodeInternal. A nil error has no
// code.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var e Error
	if errors.As(err, &e) {
		return e.Code()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeInternal
}

// Retryable reports whether err came from a dependency that may recover:
// a timeout, an unreachable subgraph or a failed store call. A rejected
// query or a bad request fails the same way every time.
func Retryable(err error) bool {
	return transient(CodeOf(err))
}

// IsTimeout reports whether err is a TimeoutError or a context deadline.
func IsTimeout(err error) bool {
	return CodeOf(err) == CodeTimeout
}
