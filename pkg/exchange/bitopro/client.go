package bitopro

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"bitogo/internal/auth"
	"bitogo/internal/metrics"
	"bitogo/internal/transport"
	"bitogo/pkg/core"
	"bitogo/pkg/exchange"
	"bitogo/pkg/stream"
)

var _ exchange.Exchange = (*Client)(nil)

// Client is the BitoPro REST and stream client. It is safe for concurrent use.
type Client struct {
	config    *core.Config
	transport *transport.Client
	auth      *auth.Authenticator
	hub       *stream.Hub
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	closeOnce sync.Once
	closeErr  error
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds configuration options for the Client.
type Options struct {
	Logger     zerolog.Logger
	Registerer prometheus.Registerer
	Clock      func() time.Time
}

// WithLogger returns an option that sets the logger for the client and its streams.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithRegisterer registers the client's REST and stream collectors on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) {
		o.Registerer = reg
	}
}

// WithClock overrides the clock used for nonces and order timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Clock = now
	}
}

// New creates a client for config. Without valid credentials in config only
// public calls and public streams are available.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
		Clock:  time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	var m *metrics.Metrics
	if options.Registerer != nil {
		var err error
		if m, err = metrics.New(options.Registerer); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	logger := options.Logger.With().Str("exchange", "bitopro").Logger()

	httpClient, err := transport.NewClient(&transport.Config{
		BaseURL: config.RESTURL,
		Timeout: config.Timeout,
	}, transport.WithLogger(logger), transport.WithMetrics(m))
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	c := &Client{
		config:    config,
		transport: httpClient,
		logger:    logger,
		metrics:   m,
		now:       options.Clock,
	}

	hubOpts := []stream.HubOption{stream.WithLogger(logger), stream.WithMetrics(m)}
	if config.Credentials.Valid() {
		a, err := auth.NewAuthenticator(config.Credentials, options.Clock)
		if err != nil {
			return nil, err
		}
		c.auth = a
		hubOpts = append(hubOpts, stream.WithAuthenticator(a))
		logger.Debug().Stringer("credentials", config.Credentials).Msg("signed calls enabled")
	}

	c.hub = stream.NewHub(stream.HubConfig{
		BaseURL:           config.WebsocketURL,
		ReconnectInterval: config.ReconnectInterval,
		HandshakeTimeout:  config.HandshakeTimeout,
		ReadTimeout:       config.ReadTimeout,
	}, hubOpts...)

	return c, nil
}

// Name returns the exchange identifier "bitopro".
func (c *Client) Name() string {
	return "bitopro"
}

// Version returns the BitoPro API version.
func (c *Client) Version() string {
	return "3"
}

// Authenticated reports whether the client can sign calls.
func (c *Client) Authenticated() bool {
	return c.auth != nil
}

// Close stops every stream and releases the HTTP client. Later calls return
// the first result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = errors.Join(c.hub.Close(), c.transport.Close())
	})
	return c.closeErr
}

// PublicRequest sends an unsigned call and returns the raw response body.
// A non-2xx status is returned as a protocol error.
func (c *Client) PublicRequest(ctx context.Context, method, path string, query *core.Query, body any) ([]byte, error) {
	req := core.NewRequest(method, path)
	req.Query = query
	req.Body = body
	resp, err := c.send(ctx, method+" "+path, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// AuthenticatedRequest signs payload and sends the call. A nil payload signs
// a fresh {identity, nonce} object. When sendPayload is set the signed bytes
// are also sent as the request body.
func (c *Client) AuthenticatedRequest(ctx context.Context, method, path string, query *core.Query, payload any, sendPayload bool) ([]byte, error) {
	req := core.NewRequest(method, path)
	req.Query = query
	op := method + " " + path
	if err := c.sign(op, req, payload, sendPayload); err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, op, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// public runs an unsigned operation and decodes its body into out.
func (c *Client) public(ctx context.Context, op core.Operation, req *core.Request, out any) error {
	resp, err := c.send(ctx, op.String(), req)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// private signs req and decodes the body into out. Reads and deletes sign a
// nonce payload; writes sign payload and send it as the body.
func (c *Client) private(ctx context.Context, op core.Operation, req *core.Request, payload any, out any) error {
	if err := c.sign(op.String(), req, payload, payload != nil); err != nil {
		return err
	}
	resp, err := c.send(ctx, op.String(), req)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) sign(op string, req *core.Request, payload any, sendPayload bool) error {
	if c.auth == nil {
		return core.NewError(core.KindSigning, op, core.ErrNoCredentials)
	}

	var (
		headers   auth.Headers
		canonical []byte
		err       error
	)
	if payload == nil {
		headers, err = c.auth.NonceHeaders()
	} else {
		headers, canonical, err = c.auth.SignPayload(payload)
	}
	if err != nil {
		return core.NewError(core.KindSigning, op, err)
	}

	req.SetHeaders(headers.Map())
	if sendPayload && canonical != nil {
		req.SetBody(canonical)
	}
	return nil
}

func (c *Client) send(ctx context.Context, op string, req *core.Request) (*transport.Response, error) {
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		perr := core.NewProtocolError(op, resp.StatusCode, resp.Body, resp.Map())
		c.logger.Debug().
			Str("op", op).
			Int("status", resp.StatusCode).
			Str("error", perr.Message).
			Msg("exchange rejected request")
		return nil, perr
	}
	return resp, nil
}

func decode(resp *transport.Response, out any) error {
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

// envelope is the {"data": ...} wrapper most BitoPro responses use.
type envelope[T any] struct {
	Data T `json:"data"`
}
