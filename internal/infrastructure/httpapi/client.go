// Package httpapi talks to the remote storefront service over its JSON and
// multipart HTTP contract. It implements ports.AuthAPI and ports.CatalogAPI.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// Options is the configuration surface of the client.
type Options struct {
	APIBaseURL string
}

// Client is the HTTP client of the remote storefront service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New returns a client for opts.APIBaseURL. A nil httpClient gets a default
// one with a 30 second timeout.
func New(opts Options, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(opts.APIBaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the normalised service root.
func (c *Client) BaseURL() string { return c.baseURL }

// ResolveImage turns a server-relative image path into an absolute URL.
// Absolute references are returned unchanged.
func (c *Client) ResolveImage(ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// errorBody accepts the message under any of the field names the service
// has been seen to use.
type errorBody struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	for _, s := range []string{b.Message, b.Msg, b.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// request is one outbound call.
type request struct {
	op          string
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

// do executes r and returns the raw response body of a 2xx reply. Transport
// failures wrap domain.ErrNetwork; non-2xx replies become *domain.ServerRejection.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogRequestDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(r.op, "network").Inc()
		c.logger.Debug().Err(err).Str("op", r.op).Str("method", r.method).Str("path", r.path).Msg("request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, r.method, r.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.CatalogRequestsTotal.WithLabelValues(r.op, "rejected").Inc()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		c.logger.Debug().Str("op", r.op).Int("status", resp.StatusCode).Str("message", eb.text()).Msg("request rejected")
		return nil, &domain.ServerRejection{Status: resp.StatusCode, Message: eb.text()}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(r.op, "network").Inc()
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrNetwork, r.op, err)
	}

	metrics.CatalogRequestsTotal.WithLabelValues(r.op, "ok").Inc()
	return raw, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	raw, err := c.do(ctx, request{op: op, method: method, path: path, token: token, body: body, contentType: contentType})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrNetwork, op, err)
	}
	return nil
}
