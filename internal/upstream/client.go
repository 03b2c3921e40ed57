// Package upstream is the single point of HTTP communication with the
// inventory/order API. It holds the session token and exposes thin
// resource-oriented wrappers; no business logic lives here.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"admin-gateway/internal/util"

	"go.uber.org/zap"
)

// APIError carries a non-2xx upstream response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Client talks to the upstream API. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates an upstream client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  util.GetLogger(),
	}
}

// Authorize obtains a session token from the upstream API.
func (c *Client) Authorize(ctx context.Context, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	endpoint := "/authorize?password=" + url.QueryEscape(password)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", fmt.Errorf("authorize failed: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("authorize failed: upstream returned no token")
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()

	c.logger.Info("Authorized against upstream API")
	return resp.Token, nil
}

// Logout invalidates the current session token upstream and forgets it
// locally even if the upstream call fails.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.token = ""
	c.mu.Unlock()

	if token == "" {
		return nil
	}
	return c.do(ctx, http.MethodDelete, "/logout?token="+url.QueryEscape(token), nil, nil)
}

// Token returns the current session token, empty when disconnected.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken restores a previously issued session token, e.g. one persisted
// across a gateway restart.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Connected reports whether a session token is held.
func (c *Client) Connected() bool {
	return c.Token() != ""
}

// do performs one request/response exchange. Non-2xx responses surface as
// *APIError; empty bodies decode to the zero value of out.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	ctx, span := util.StartSpan(ctx, "upstream "+method+" "+metricEndpoint(endpoint))
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	util.UpstreamRequestDuration.WithLabelValues(method, metricEndpoint(endpoint)).Observe(time.Since(start).Seconds())
	if err != nil {
		util.UpstreamRequestsTotal.WithLabelValues(method, metricEndpoint(endpoint), "error").Inc()
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	util.UpstreamRequestsTotal.WithLabelValues(method, metricEndpoint(endpoint), fmt.Sprintf("%d", resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Upstream request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

// metricEndpoint strips the query string and numeric path segments so
// metric labels stay low-cardinality.
func metricEndpoint(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	parts := strings.Split(endpoint, "/")
	for i, p := range parts {
		if p != "" && strings.IndexFunc(p, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
