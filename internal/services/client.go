package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"lankarail-console/internal/logger"
	"lankarail-console/internal/metrics"
	"lankarail-console/internal/models"
)

// APIClient talks JSON to the railway backend on behalf of a session.
// Calls are never retried.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewAPIClient creates a backend client. A zero timeout leaves calls unbounded.
func NewAPIClient(baseURL string, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *APIClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		metrics:    m,
	}
}

// Do sends body as JSON and decodes a 2xx JSON response into out
func (c *APIClient) Do(ctx context.Context, sess *models.Session, method, path string, body, out interface{}) error {
	_, err := c.send(ctx, sess, method, path, body, out)
	return err
}

// send is Do that also returns response headers, which login needs for cookies
func (c *APIClient) send(ctx context.Context, sess *models.Session, method, path string, body, out interface{}) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if sess != nil {
		if sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
		for _, ck := range sess.BackendCookies {
			req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		}
	}

	log := logger.For(ctx, c.logger).With(zap.String("method", method), zap.String("path", path))
	resource := resourceLabel(path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(resource, method, "transport_error", time.Since(start).Seconds())
		log.Warn("backend call failed", zap.Error(err))
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveBackend(resource, method, "transport_error", elapsed.Seconds())
		log.Warn("backend response unreadable", zap.Error(err))
		return resp.Header, &TransportError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(method, path, resp.StatusCode, raw)
		c.metrics.ObserveBackend(resource, method, "http_"+strconv.Itoa(resp.StatusCode), elapsed.Seconds())
		log.Warn("backend returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.Duration("duration", elapsed),
		)
		return resp.Header, apiErr
	}

	c.metrics.ObserveBackend(resource, method, "ok", elapsed.Seconds())
	log.Debug("backend call", zap.Int("status", resp.StatusCode), zap.Duration("duration", elapsed))

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.Header, &DecodeError{Method: method, Path: path, Body: string(raw), Err: err}
		}
	}
	return resp.Header, nil
}

// resourceLabel keeps metric cardinality bounded: /api/admin/trains/7 -> trains
func resourceLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	p := strings.TrimPrefix(path, "/api/")
	p = strings.TrimPrefix(p, "admin/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "unknown"
	}
	return p
}
