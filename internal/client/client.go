// Package client calls the calculator service over HTTP.
//
// Evaluate returns one of three failure shapes: an error wrapping
// ErrConnection when the service could not be reached, a *StatusError when it
// answered with anything but 200, and any other error (for example an
// undecodable body).
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// ErrConnection marks transport failures reaching the service.
var ErrConnection = errors.New("connection error")

// ErrMissingResult is returned for a 200 response whose body has no numeric
// "result", such as the GET / status body of a misconfigured base URL.
var ErrMissingResult = errors.New("'result' missing from response")

// wireResponse tells an absent or null result apart from a zero one.
type wireResponse struct {
	Operation string   `json:"operation"`
	A         string   `json:"a"`
	B         string   `json:"b"`
	Result    *float64 `json:"result"`
}

// StatusError is returned when the service responds with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// maxErrorBody bounds how much of a non-200 body is kept on StatusError.
const maxErrorBody = 512

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithTimeout bounds each request. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Evaluate issues GET {base}/{op}?a=..&b=.. and decodes the response.
func (c *Client) Evaluate(ctx context.Context, op calculator.Operation, a, b float64) (*calculator.CalcResponse, error) {
	requestID := observability.NewRequestID()
	logger := c.logger.With(
		zap.String("operation", string(op)),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.String("request_id", requestID),
	)

	u := c.baseURL.JoinPath(string(op))
	q := url.Values{}
	q.Set("a", strconv.FormatFloat(a, 'g', -1, 64))
	q.Set("b", strconv.FormatFloat(b, 'g', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(observability.RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("evaluation cancelled", zap.Error(err))
			return nil, ctxErr
		}
		logger.Error("service unreachable", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Error("service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var body wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Error("undecodable response", zap.Error(err))
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if body.Result == nil {
		logger.Error("response without result")
		return nil, ErrMissingResult
	}

	out := calculator.CalcResponse{
		Operation: body.Operation,
		A:         body.A,
		B:         body.B,
		Result:    *body.Result,
	}

	logger.Info("evaluation completed",
		zap.Float64("result", out.Result),
		zap.Duration("duration", time.Since(start)),
	)

	return &out, nil
}
