package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client talks to the Revitek agenda backend. A Client is safe for concurrent
// use; WithToken returns a copy bound to one user's bearer token.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		logger:  logger,
		metrics: m,
	}
}

func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Error is a non-2xx answer from the backend. Body keeps the raw payload so
// it can be shown to the user as-is.
type Error struct {
	Status int
	Path   string
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d for %s: %s", e.Status, e.Path, e.Body)
}

// Message returns the friendliest text available in the error body, falling
// back to the raw body.
func (e *Error) Message() string {
	var payload map[string]any
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if strings.TrimSpace(e.Body) == "" {
		return http.StatusText(e.Status)
	}
	return e.Body
}

func IsNotFound(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Status == http.StatusNotFound
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(op, "error", time.Since(started).Seconds())
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(op, strconv.Itoa(resp.StatusCode), time.Since(started).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		c.logger.Warn("backend non-2xx response",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
			zap.String("body", truncate(msg, 300)),
		)
		return &Error{Status: resp.StatusCode, Path: path, Body: msg}
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getList decodes either a bare JSON array or one of the envelopes the
// backend uses for lists.
func getList[T any](ctx context.Context, c *Client, op, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, op, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		out := []T{}
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}

	var wrapped struct {
		Results []T `json:"results"`
		Data    []T `json:"data"`
		Slots   []T `json:"slots"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	switch {
	case wrapped.Results != nil:
		return wrapped.Results, nil
	case wrapped.Data != nil:
		return wrapped.Data, nil
	case wrapped.Slots != nil:
		return wrapped.Slots, nil
	}
	return []T{}, nil
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (e *Error) StatusCode() int {
	return e.Status
}
