// Package transport issues single REST round trips against the BitoPro API.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"bitogo/internal/metrics"
	"bitogo/pkg/core"
)

// Config holds the settings of a transport client.
type Config struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"min=1ms"`
}

// Client wraps a resty client. It never retries and never sets client-wide
// headers, so concurrent calls cannot observe each other's authentication.
type Client struct {
	client  *resty.Client
	baseURL string
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// Response represents an HTTP response with its status code, body, and headers.
type Response struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int

	// Body contains the raw response body bytes.
	Body []byte

	// Header contains the response headers.
	Header http.Header
}

type Option func(*Client)

// WithLogger sets the logger used for request and response debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

var validate = validator.New()

// NewClient creates a transport client for config.
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Client{
		baseURL: config.BaseURL,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	client := resty.New()
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	client.AddContentTypeEncoder("application/json", func(w io.Writer, v any) error {
		data, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	c.client = client
	return c, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.client.Close()
}

// BaseURL returns the URL every request path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send executes req once. Any HTTP status is returned as a Response; only
// failures that produced no response become errors, of kind KindTransport.
func (c *Client) Send(ctx context.Context, req *core.Request) (*Response, error) {
	r := c.client.R().SetContext(ctx)

	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}

	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(req.Body)
	}

	op := req.Method + " " + req.Path
	start := time.Now()
	resp, err := r.Execute(req.Method, req.URL(c.baseURL))
	if err != nil {
		c.metrics.ObserveREST(req.Method, 0, time.Since(start))
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("http request failed")
		return nil, core.NewError(core.KindTransport, op, err)
	}
	c.metrics.ObserveREST(req.Method, resp.StatusCode(), time.Since(start))

	if resp.StatusCode() >= http.StatusBadRequest {
		c.logger.Warn().
			Str("method", req.Method).
			Str("path", req.Path).
			Int("status", resp.StatusCode()).
			Msg("http error response")
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		Header:     resp.Header(),
	}, nil
}

// IsSuccess returns true if the response status code indicates success (2xx).
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the response status code indicates an error (4xx or 5xx).
func (r *Response) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// Decode parses the body into v with sonic. Malformed JSON yields a KindDecode error.
func (r *Response) Decode(v any) error {
	if err := sonic.Unmarshal(r.Body, v); err != nil {
		e := core.NewError(core.KindDecode, "decode response", err)
		e.StatusCode = r.StatusCode
		e.Raw = r.Body
		return e
	}
	return nil
}

// Map decodes a JSON object body. It returns nil when the body is not an object.
func (r *Response) Map() map[string]any {
	var m map[string]any
	if err := sonic.Unmarshal(r.Body, &m); err != nil {
		return nil
	}
	return m
}
