package soap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tanchhohang/airlines-api/internal/platform/metrics"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// contentType is fixed by the backend's SOAP 1.1 binding.
const contentType = "text/xml; charset=utf-8"

// Client posts request envelopes to the reservation backend. The endpoint URL
// and TLS are deployment configuration. The client never retries; retry
// policy, if any, belongs to a collaborator wrapping it.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMetrics attaches backend-call instrumentation.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient constructs a backend client with a bounded per-call timeout.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Call sends one envelope and returns the raw response text. Connection
// failures, timeouts, and non-2xx statuses all surface as transport errors.
// Cancelling ctx abandons the in-flight call; the backend has no cancel API,
// so no compensating action is attempted.
func (c *Client) Call(ctx context.Context, method, body string) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeTransport, "build backend request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("SOAPAction", BookingNamespace+method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, "error", start)
		c.logger.ErrorContext(ctx, "backend call failed",
			"method", method,
			"error", err,
		)
		return "", dErrors.Wrap(dErrors.CodeTransport, "backend unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, "error", start)
		return "", dErrors.Wrap(dErrors.CodeTransport, "read backend response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(method, "error", start)
		c.logger.ErrorContext(ctx, "backend returned non-success status",
			"method", method,
			"status", resp.StatusCode,
		)
		return "", dErrors.New(dErrors.CodeTransport, "backend returned status "+resp.Status)
	}

	c.observe(method, "ok", start)
	return string(text), nil
}

func (c *Client) observe(method, outcome string, start time.Time) {
	c.metrics.ObserveBackendCall(method, outcome, time.Since(start))
}
