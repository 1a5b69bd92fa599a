//go:build e2e

// Package e2e exercises a running marketplace gateway and its backing stores.
// Tests skip when the corresponding service is not reachable.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// GetGatewayURL returns the base URL of the gateway under test.
func GetGatewayURL() string {
	return strings.TrimRight(getEnv("MARKETPLACE_GATEWAY_URL", "http://127.0.0.1:6010"), "/")
}

// GetOlricServers returns the Olric servers used by the store tests.
func GetOlricServers() []string {
	var out []string
	for _, s := range strings.Split(getEnv("MARKETPLACE_OLRIC_SERVERS", "localhost:3320"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GetRQLiteDSN returns the rqlite DSN used by the store tests.
func GetRQLiteDSN() string {
	return getEnv("MARKETPLACE_RQLITE_DSN", "http://localhost:5001")
}

// SkipIfMissingGateway skips the test if the gateway is not accessible
func SkipIfMissingGateway(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !IsGatewayReady(ctx) {
		t.Skipf("gateway not accessible at %s; tests skipped", GetGatewayURL())
	}
}

// IsGatewayReady checks if the gateway is accessible and healthy
func IsGatewayReady(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GetGatewayURL()+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// SkipIfUnreachable skips the test unless a TCP connection to addr succeeds.
func SkipIfUnreachable(t *testing.T, addr string) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Skipf("%s not reachable; tests skipped", addr)
	}
	conn.Close()
}

// NewTestLogger returns a logger that writes through t.Log.
func NewTestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// GenerateUniqueID returns a name unlikely to collide between runs.
func GenerateUniqueID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// Do sends a request to the gateway and decodes a JSON response into out.
func Do(ctx context.Context, method, path string, body io.Reader, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, GetGatewayURL()+path, body)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
