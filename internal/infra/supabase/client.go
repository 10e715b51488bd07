// Package supabase provides the data backend adapters for the admin console:
// PostgREST CRUD, GoTrue auth, object storage and edge function invocation.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/resilience"
)

var tracer = otel.Tracer("supabase")

// Client wraps HTTP calls to the Supabase REST surface. Requests carry the
// project apikey plus the caller's own bearer token when present, so row-level
// security evaluates against the signed-in admin.
type Client struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	cb         *gobreaker.CircuitBreaker
	bulk       *resilience.Bulkhead
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a Supabase client.
func NewClient(httpClient *http.Client, baseURL, anonKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		cb:         cb,
		bulk:       resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
		logger:     logger,
	}
}

// send executes the request under the bulkhead so concurrent dashboard
// fan-outs cannot exhaust the backend connection pool.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.bulk.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.bulk.Release()
	return c.httpClient.Do(req)
}

// bearer returns the Authorization credential for a request: the caller's
// access token when the context carries one, the anon key otherwise.
func (c *Client) bearer(ctx context.Context) string {
	if token, ok := domain.AccessTokenFrom(ctx); ok {
		return token
	}
	return c.anonKey
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, prefer string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.bearer(ctx)))
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
}

// postgrestError is the JSON error body PostgREST returns on 4xx.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// translateError maps a non-2xx PostgREST response to a domain error.
// Postgres constraint codes become conflicts the handlers can phrase.
func translateError(op string, status int, body []byte) error {
	var pgErr postgrestError
	if err := json.Unmarshal(body, &pgErr); err == nil && pgErr.Code != "" {
		switch pgErr.Code {
		case "23505":
			return &domain.ErrConflict{Code: pgErr.Code, Message: pgErr.Message}
		case "23503":
			return &domain.ErrConflict{Code: pgErr.Code, Message: pgErr.Message}
		}
	}
	return fmt.Errorf("supabase %s returned %d: %s", op, status, string(body))
}

// doGet executes an authenticated GET against PostgREST.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(ctx, req, "")

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: GET request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: GET non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, translateError("GET "+path, resp.StatusCode, body)
	}

	c.logger.Debug("supabase: GET OK", zap.String("path", path), zap.Int("status", resp.StatusCode))
	return body, nil
}

// doCount returns the exact row count for a table (optionally filtered).
// PostgREST reports it in the Content-Range header.
func (c *Client) doCount(ctx context.Context, path string) (int64, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	url := fmt.Sprintf("%s/rest/v1/%s%sselect=id&limit=1", c.baseURL, path, sep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	c.setHeaders(ctx, req, "count=exact")

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: count request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("supabase count %s returned %d", path, resp.StatusCode)
	}

	// Content-Range: 0-0/42 (or */0 when empty)
	cr := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("supabase count %s: missing Content-Range", path)
	}
	n, err := strconv.ParseInt(cr[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("supabase count %s: bad Content-Range %q", path, cr)
	}
	return n, nil
}

// doPost inserts rows and returns the created representation.
func (c *Client) doPost(ctx context.Context, table string, data map[string]any) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(ctx, req, "return=representation")

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: POST request failed",
			zap.String("table", table),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: POST non-2xx",
			zap.String("table", table),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, translateError("POST "+table, resp.StatusCode, body)
	}

	c.logger.Debug("supabase: POST OK", zap.String("table", table), zap.Int("status", resp.StatusCode))
	return body, nil
}

// doPatch updates matching rows and returns the updated representation.
func (c *Client) doPatch(ctx context.Context, path string, data map[string]any) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(ctx, req, "return=representation")

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: PATCH request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: PATCH non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, translateError("PATCH "+path, resp.StatusCode, body)
	}

	c.logger.Debug("supabase: PATCH OK", zap.String("path", path))
	return body, nil
}

// doDelete removes matching rows.
func (c *Client) doDelete(ctx context.Context, path string) error {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(ctx, req, "")

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: DELETE request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: DELETE non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return translateError("DELETE "+path, resp.StatusCode, body)
	}

	c.logger.Debug("supabase: DELETE OK", zap.String("path", path))
	return nil
}

// countRows runs a count query through the circuit breaker with retries.
func (c *Client) countRows(ctx context.Context, path string) (int64, error) {
	var n int64
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var err error
			n, err = c.doCount(ctx, path)
			return err
		})
	})
	return n, err
}

// getList runs a read through the circuit breaker with retries and decodes
// the PostgREST array body into dst. An empty result leaves dst untouched.
func (c *Client) getList(ctx context.Context, path string, dst any) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				return nil
			}
			if err := json.Unmarshal(body, dst); err != nil {
				return fmt.Errorf("failed to decode %s: %w", path, err)
			}
			return nil
		})
	})
	return err
}
