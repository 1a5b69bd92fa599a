// Package subgraph executes GraphQL queries against a subgraph over HTTP.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/marketplace/pkg/contracts"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/metrics"
)

const (
	// DefaultTimeout bounds a request when Config.Timeout is zero.
	DefaultTimeout = 15 * time.Second

	// maxResponseBytes caps the body read from a subgraph.
	maxResponseBytes = 64 << 20
)

var _ contracts.Subgraph = (*Client)(nil)

// Config holds configuration for the subgraph client
type Config struct {
	// URL is the GraphQL endpoint of the subgraph
	URL string

	// Timeout is the per-request timeout
	// If zero, defaults to 15 seconds
	Timeout time.Duration

	// HTTPClient overrides the transport. Its Timeout is left untouched.
	HTTPClient *http.Client
}

// Client posts queries to a single subgraph endpoint
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// GraphQLError is one entry of a response "errors" array.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLErrors is the non-empty "errors" array of a response.
type GraphQLErrors []GraphQLError

// Error joins the messages of every entry.
func (e GraphQLErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ge := range e {
		msgs[i] = ge.Message
	}
	return strings.Join(msgs, "; ")
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors GraphQLErrors   `json:"errors"`
}

// NewClient creates a subgraph client. logger and m may be nil.
func NewClient(cfg Config, logger *zap.Logger, m *metrics.Metrics) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		url:        cfg.URL,
		httpClient: httpClient,
		logger:     logger,
		metrics:    m,
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Query posts query and variables and decodes the "data" member into out.
// Transport failures, non-2xx statuses and GraphQL errors come back as
// *errors.SubgraphError, deadlines as *errors.TimeoutError. Nothing is retried.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	start := time.Now()
	err := c.do(ctx, query, variables, out)
	c.metrics.RecordSubgraphRequest(statusLabel(err), time.Since(start))
	if err != nil {
		c.logger.Debug("Subgraph query failed",
			zap.String("url", c.url),
			zap.String("code", mperrors.CodeOf(err)),
			zap.Bool("retryable", mperrors.Retryable(err)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode subgraph request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create subgraph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return mperrors.NewTimeoutError("subgraph query", c.httpClient.Timeout, err)
		}
		return mperrors.NewSubgraphError(c.url, 0, "subgraph request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return mperrors.NewTimeoutError("subgraph query", c.httpClient.Timeout, err)
		}
		return mperrors.NewSubgraphError(c.url, resp.StatusCode, "failed to read subgraph response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mperrors.NewSubgraphError(c.url, resp.StatusCode,
			fmt.Sprintf("subgraph returned status %d", resp.StatusCode),
			errors.New(truncate(raw, 512)),
		)
	}

	var decoded response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return mperrors.NewSubgraphError(c.url, resp.StatusCode, "malformed subgraph response", err)
	}
	if len(decoded.Errors) > 0 {
		return mperrors.NewSubgraphRejection(c.url, resp.StatusCode, decoded.Errors)
	}
	if out == nil || len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("failed to decode subgraph data: %w", err)
	}
	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case mperrors.IsTimeout(err):
		return "timeout"
	default:
		return "error"
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
