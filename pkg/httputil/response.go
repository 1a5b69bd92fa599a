package httputil

import (
	"encoding/json"
	"net/http"

	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
)

// WriteJSON writes a JSON response with the given status code.
// Encoding errors are ignored once the header has been written.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardized JSON error response.
// The response format is: {"error": "message"}
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]any{"error": msg})
}

// WriteErr writes a typed error from pkg/errors. The status comes from the
// error code and the body carries the message, code and details:
// {"error": "message", "code": "VALIDATION_ERROR", "details": {...}}
func WriteErr(w http.ResponseWriter, err error) {
	httpErr := mperrors.ToHTTPError(err, w.Header().Get("X-Request-Id"))
	body := map[string]any{
		"error": httpErr.Message,
		"code":  httpErr.Code,
	}
	if len(httpErr.Details) > 0 {
		body["details"] = httpErr.Details
	}
	if httpErr.TraceID != "" {
		body["trace_id"] = httpErr.TraceID
	}
	WriteJSON(w, httpErr.Status, body)
}

// WriteSuccess writes a standardized JSON success response.
// The response format is: {"status": "ok"}
func WriteSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// WriteSuccessWithData writes a success response with additional data fields.
// The response format is: {"status": "ok", ...data}
func WriteSuccessWithData(w http.ResponseWriter, data map[string]any) {
	response := map[string]any{"status": "ok"}
	for k, v := range data {
		response[k] = v
	}
	WriteJSON(w, http.StatusOK, response)
}
