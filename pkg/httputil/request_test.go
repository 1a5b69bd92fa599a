package httputil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestDecodeJSONStrict(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"ids": ["1", "2"]}`, false},
		{"unknown field", `{"ids": [], "extra": 1}`, true},
		{"invalid json", `{invalid}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			var result struct {
				IDs []string `json:"ids"`
			}
			err := DecodeJSONStrict(req, &result)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeJSONStrict() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQueryParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"repeated", "?id=1&id=2", []string{"1", "2"}},
		{"comma separated", "?id=1,2", []string{"1", "2"}},
		{"mixed with blanks", "?id=1,,2&id=&id=3", []string{"1", "2", "3"}},
		{"absent", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if got := QueryParams(req, "id"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("QueryParams() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionalQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?first=24&skip=-3&bad=ten", nil)

	first, err := OptionalQueryInt(req, "first")
	if err != nil || first == nil || *first != 24 {
		t.Errorf("first = %v, %v", first, err)
	}
	skip, err := OptionalQueryInt(req, "skip")
	if err != nil || skip == nil || *skip != -3 {
		t.Errorf("skip = %v, %v", skip, err)
	}
	if v, err := OptionalQueryInt(req, "missing"); v != nil || err != nil {
		t.Errorf("missing = %v, %v", v, err)
	}
	if _, err := OptionalQueryInt(req, "bad"); err == nil {
		t.Error("expected error for non-integer value")
	}
}

func TestOptionalQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?isOnSale=false&isWearableHead=perhaps&isWearableAccessory=YES", nil)

	v, err := OptionalQueryBool(req, "isOnSale")
	if err != nil || v == nil || *v {
		t.Errorf("isOnSale = %v, %v", v, err)
	}
	if v, err := OptionalQueryBool(req, "isWearableAccessory"); err != nil || v == nil || !*v {
		t.Errorf("isWearableAccessory = %v, %v", v, err)
	}
	if v, err := OptionalQueryBool(req, "isEmoteLoop"); v != nil || err != nil {
		t.Errorf("absent = %v, %v", v, err)
	}
	if _, err := OptionalQueryBool(req, "isWearableHead"); err == nil {
		t.Error("expected error for invalid boolean")
	}
}
