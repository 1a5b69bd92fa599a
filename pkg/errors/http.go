package errors

import "errors"

// HTTPError is the body the gateway writes for a failed request.
type HTTPError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

type detailer interface {
	details() map[string]string
}

// ToHTTPError converts err into a response body. Messages of untyped errors
// are not exposed; they are logged by the caller instead.
func ToHTTPError(err error, traceID string) *HTTPError {
	code := CodeOf(err)
	out := &HTTPError{
		Status:  httpStatus(code),
		Code:    code,
		Message: "internal error",
		TraceID: traceID,
	}

	var e Error
	if errors.As(err, &e) {
		out.Message = e.Message()
	} else if code == CodeTimeout {
		out.Message = "request timed out"
	}

	var d detailer
	if errors.As(err, &d) {
		out.Details = d.details()
	}
	if out.Details == nil {
		out.Details = map[string]string{}
	}
	out.Details["retryable"] = boolString(transient(code))
	return out
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
