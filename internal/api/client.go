package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	outcomeOK        = "ok"
	outcomeStatus    = "bad_status"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

// Client talks to the Bluestrap REST API. Every authenticated call takes the
// caller's Credentials explicitly.
type Client struct {
	origin     string
	httpClient *http.Client
	metrics    *Metrics
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

func New(cfg config.APIConfig, opts ...Option) *Client {
	c := &Client{
		origin: strings.TrimRight(cfg.Origin, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthURL is the identity provider entry point the browser navigates to.
func (c *Client) AuthURL() string {
	return c.origin + "/auth/google"
}

func (c *Client) newRequest(ctx context.Context, method string, endpoint string, body io.Reader, creds *auth.Credentials) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.origin+endpoint, body)
	if err != nil {
		return nil, err
	}
	if creds != nil {
		creds.Authorize(req)
	}
	return req, nil
}

func (c *Client) do(op string, req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(op, outcomeTransport, time.Since(start))
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.observe(op, outcomeStatus, time.Since(start))
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.observe(op, outcomeOK, time.Since(start))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.observe(op, outcomeDecode, time.Since(start))
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %s", ErrDecode, err.Error())}
	}

	c.metrics.observe(op, outcomeOK, time.Since(start))
	return nil
}
