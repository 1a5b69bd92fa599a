package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return body
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]any{"chainId": 137})

	if w.Code != http.StatusCreated {
		t.Errorf("WriteJSON() status = %v, want %v", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("WriteJSON() Content-Type = %v, want application/json", ct)
	}
	if body := decodeBody(t, w); body["chainId"] != float64(137) {
		t.Errorf("unexpected body %v", body)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusBadRequest, "invalid owner")

	if w.Code != http.StatusBadRequest {
		t.Errorf("WriteError() status = %v, want %v", w.Code, http.StatusBadRequest)
	}
	if body := decodeBody(t, w); body["error"] != "invalid owner" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestWriteErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", mperrors.NewValidationError("first", "must not exceed 1000", 2000), http.StatusBadRequest, mperrors.CodeValidation},
		{"not found", mperrors.NewNotFoundError("contract", "0xabc"), http.StatusNotFound, mperrors.CodeNotFound},
		{"subgraph", mperrors.NewSubgraphError("http://indexer", 500, "subgraph returned status 500", nil), http.StatusBadGateway, mperrors.CodeSubgraphUnavailable},
		{"store", mperrors.NewStoreError("rqlite", "get", nil), http.StatusServiceUnavailable, mperrors.CodeStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			w.Header().Set("X-Request-Id", "req-1")
			WriteErr(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeBody(t, w)
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %v", body["code"], tt.wantCode)
			}
			if body["trace_id"] != "req-1" {
				t.Errorf("trace_id = %v", body["trace_id"])
			}
			if _, ok := body["details"]; !ok {
				t.Errorf("expected details in %v", body)
			}
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w)
	if body := decodeBody(t, w); body["status"] != "ok" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestWriteSuccessWithData(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessWithData(w, map[string]any{"contracts": 12})
	body := decodeBody(t, w)
	if body["status"] != "ok" || body["contracts"] != float64(12) {
		t.Errorf("unexpected body %v", body)
	}
}
