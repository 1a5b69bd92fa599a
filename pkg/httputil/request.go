package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// DefaultMaxBodyBytes bounds request bodies read by DecodeJSONStrict.
const DefaultMaxBodyBytes = 1 << 20

// DecodeJSONStrict decodes at most DefaultMaxBodyBytes of the request body as
// JSON, rejecting unknown fields.
func DecodeJSONStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, DefaultMaxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// QueryParams returns every non-empty value of a repeated query parameter.
// Comma separated values are split, so ?id=1&id=2 and ?id=1,2 are equivalent.
func QueryParams(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// OptionalQueryInt returns nil when the parameter is absent and an error when
// it is present but not an integer.
func OptionalQueryInt(r *http.Request, key string) (*int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &i, nil
}

// OptionalQueryBool returns nil when the parameter is absent and an error when
// it is not a recognised boolean. "true", "1", "yes" and "on" are true, their
// opposites false, in any case.
func OptionalQueryBool(r *http.Request, key string) (*bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	b, ok := parseBool(v)
	if !ok {
		return nil, fmt.Errorf("%s must be a boolean", key)
	}
	return &b, nil
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}
