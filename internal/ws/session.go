// Package ws drives one BitoPro stream connection per Session, reconnecting
// after every drop until the session is closed.
package ws

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/lxzan/gws"
	"github.com/rs/zerolog"

	"bitogo/internal/metrics"
	"bitogo/pkg/core"
)

// Config holds the settings of one session.
type Config struct {
	// Name identifies the channel in logs and metrics.
	Name string
	// URL is the full stream URL including subscription parameters.
	URL string
	// Header returns handshake headers. It is called once per attempt so
	// signed headers always carry a fresh nonce. Nil for public channels.
	Header func() (http.Header, error)
	// ReconnectInterval is the wait between a drop and the next attempt.
	ReconnectInterval time.Duration
	// HandshakeTimeout bounds each dial.
	HandshakeTimeout time.Duration
	// ReadTimeout drops a connection that receives nothing for this long. Zero disables it.
	ReadTimeout time.Duration
}

// Session owns at most one socket at a time and relays every inbound frame
// to its callback. Reconnection is loop driven: Run dials, reads until the
// socket ends, waits, and dials again.
type Session struct {
	config    Config
	onMessage func(string)
	state     *State
	handler   *sessionHandler
	backoff   backoff.BackOff
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	mu       sync.Mutex
	conn     *gws.Conn
	started  bool
	closed   bool
	lastErr  error
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

type sessionHandler struct {
	session *Session
}

type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMetrics records connects, drops and relayed frames on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithBackOff replaces the constant reconnect interval with b. A b that
// returns backoff.Stop ends the session as if it were closed.
func WithBackOff(b backoff.BackOff) Option {
	return func(s *Session) {
		s.backoff = b
	}
}

// NewSession creates a session for config. onMessage runs on the read
// goroutine; a slow callback delays the frames behind it.
func NewSession(config Config, onMessage func(string), opts ...Option) *Session {
	if config.ReconnectInterval == 0 {
		config.ReconnectInterval = 3 * time.Second
	}
	if config.HandshakeTimeout == 0 {
		config.HandshakeTimeout = 10 * time.Second
	}
	if onMessage == nil {
		onMessage = func(string) {}
	}

	s := &Session{
		config:    config,
		onMessage: onMessage,
		state:     &State{},
		logger:    zerolog.Nop(),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	s.state.Store(StateDisconnected)
	s.handler = &sessionHandler{session: s}
	for _, opt := range opts {
		opt(s)
	}
	if s.backoff == nil {
		s.backoff = backoff.NewConstantBackOff(config.ReconnectInterval)
	}
	return s
}

// Name returns the channel name.
func (s *Session) Name() string {
	return s.config.Name
}

// State returns the current session state.
func (s *Session) State() ConnState {
	return s.state.Load()
}

// Done is closed when Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.doneCh
}

// Run connects and keeps the session connected until Close is called. Every
// drop and every failed handshake is followed by the backoff wait and a new
// attempt. It returns ErrSessionClosed for a closed session and
// ErrSessionRunning when called twice.
func (s *Session) Run() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return core.ErrSessionClosed
	}
	if s.started {
		s.mu.Unlock()
		return core.ErrSessionRunning
	}
	s.started = true
	s.mu.Unlock()
	defer close(s.doneCh)

	for {
		err := s.connect()
		if s.stopping() {
			return nil
		}

		s.metrics.StreamDropped(s.config.Name)
		wait := s.backoff.NextBackOff()
		if wait == backoff.Stop {
			s.logger.Warn().Err(err).Str("channel", s.config.Name).Msg("stream disconnected, giving up")
			s.advance(StateDisconnected)
			return err
		}
		s.logger.Info().
			Err(err).
			Str("channel", s.config.Name).
			Dur("retry_in", wait).
			Msg("stream disconnected, reconnecting")

		timer := time.NewTimer(wait)
		select {
		case <-s.stopCh:
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// connect runs one attempt: dial, relay until the socket ends, and report why it ended.
func (s *Session) connect() error {
	s.advance(StateConnecting)

	var header http.Header
	if s.config.Header != nil {
		h, err := s.config.Header()
		if err != nil {
			s.advance(StateDisconnected)
			s.logger.Error().Err(err).Str("channel", s.config.Name).Msg("build handshake headers")
			return err
		}
		header = h
		s.advance(StateAuthenticating)
	}

	socket, resp, err := gws.NewClient(s.handler, &gws.ClientOption{
		Addr:             s.config.URL,
		RequestHeader:    header,
		HandshakeTimeout: s.config.HandshakeTimeout,
		TlsConfig:        tlsConfig(s.config.URL),
	})
	if err != nil {
		s.advance(StateDisconnected)
		e := core.NewError(core.KindConnectionDropped, s.config.Name+" handshake", err)
		if resp != nil {
			e.StatusCode = resp.StatusCode
		}
		s.logger.Error().Err(e).Str("channel", s.config.Name).Msg("stream handshake failed")
		return e
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = socket.NetConn().Close()
		return nil
	}
	s.conn = socket
	s.lastErr = nil
	s.mu.Unlock()

	socket.ReadLoop()

	s.mu.Lock()
	s.conn = nil
	cause := s.lastErr
	s.mu.Unlock()

	s.advance(StateDisconnected)
	return core.NewError(core.KindConnectionDropped, s.config.Name, cause)
}

// Close stops the session: no reconnect follows, the socket is closed and
// Close waits for Run to return. The session ends Disconnected and cannot be
// run again. Close must not be called from the message callback.
func (s *Session) Close() error {
	s.stopOnce.Do(func() {
		s.state.Store(StateClosing)
		s.metrics.SetStreamState(s.config.Name, int(StateClosing))

		s.mu.Lock()
		s.closed = true
		started := s.started
		conn := s.conn
		s.mu.Unlock()

		close(s.stopCh)
		if conn != nil {
			_ = conn.WriteClose(1000, []byte("client closing"))
			_ = conn.NetConn().Close()
		}
		if started {
			<-s.doneCh
		} else {
			close(s.doneCh)
		}

		s.state.Store(StateDisconnected)
		s.metrics.SetStreamState(s.config.Name, int(StateDisconnected))
		s.logger.Info().Str("channel", s.config.Name).Msg("stream closed")
	})
	return nil
}

func (s *Session) stopping() bool {
	select {
	case <-s.stopCh:
		return true
	default:
		return false
	}
}

// advance moves to state unless a local shutdown has taken over.
func (s *Session) advance(state ConnState) {
	for {
		current := s.state.Load()
		if current == StateClosing {
			return
		}
		if s.state.CompareAndSwap(current, state) {
			s.metrics.SetStreamState(s.config.Name, int(state))
			return
		}
	}
}

func (s *Session) refreshDeadline(socket *gws.Conn) {
	if s.config.ReadTimeout > 0 {
		_ = socket.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	}
}

func (s *Session) deliver(frame string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("channel", s.config.Name).
				Interface("panic", r).
				Msg("stream callback panicked")
		}
	}()
	s.metrics.StreamMessage(s.config.Name)
	s.onMessage(frame)
}

func tlsConfig(rawURL string) *tls.Config {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}
	if u, err := url.Parse(rawURL); err == nil {
		cfg.ServerName = u.Hostname()
	}
	return cfg
}

func (h *sessionHandler) OnOpen(socket *gws.Conn) {
	s := h.session
	s.advance(StateOpen)
	s.backoff.Reset()
	s.metrics.StreamConnected(s.config.Name)
	s.refreshDeadline(socket)

	s.logger.Info().
		Str("channel", s.config.Name).
		Msg("stream connected")
}

func (h *sessionHandler) OnClose(socket *gws.Conn, err error) {
	s := h.session
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if s.stopping() {
		return
	}

	var closeErr *gws.CloseError
	if errors.As(err, &closeErr) {
		s.logger.Info().
			Str("channel", s.config.Name).
			Uint16("code", closeErr.Code).
			Str("reason", string(closeErr.Reason)).
			Msg("stream closed by server")
		return
	}
	s.logger.Error().
		Err(err).
		Str("channel", s.config.Name).
		Msg("stream error")
}

func (h *sessionHandler) OnPing(socket *gws.Conn, payload []byte) {
	h.session.refreshDeadline(socket)
	_ = socket.WritePong(payload)
}

func (h *sessionHandler) OnPong(socket *gws.Conn, payload []byte) {
	h.session.refreshDeadline(socket)
}

func (h *sessionHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	h.session.refreshDeadline(socket)
	h.session.deliver(string(message.Bytes()))
}
