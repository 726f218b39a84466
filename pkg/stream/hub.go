package stream

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"bitogo/internal/auth"
	"bitogo/internal/metrics"
	"bitogo/internal/ws"
	"bitogo/pkg/core"
)

// Handle identifies one subscription of a Hub.
type Handle struct {
	ID       uuid.UUID
	Endpoint Endpoint
}

func (h Handle) String() string {
	return fmt.Sprintf("%s(%s)", h.Endpoint.Name(), h.ID)
}

// HubConfig holds the settings shared by every session of a hub.
type HubConfig struct {
	BaseURL           string
	ReconnectInterval time.Duration
	HandshakeTimeout  time.Duration
	ReadTimeout       time.Duration
}

// Hub runs one session per subscription, each on its own goroutine.
type Hub struct {
	config  HubConfig
	auth    *auth.Authenticator
	logger  zerolog.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	sessions map[uuid.UUID]*ws.Session
	wg       *conc.WaitGroup
	closed   bool
}

type HubOption func(*Hub)

// WithAuthenticator enables private channels.
func WithAuthenticator(a *auth.Authenticator) HubOption {
	return func(h *Hub) {
		h.auth = a
	}
}

func WithLogger(logger zerolog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) HubOption {
	return func(h *Hub) {
		h.metrics = m
	}
}

// NewHub creates a hub. Without an authenticator only public channels can be subscribed.
func NewHub(config HubConfig, opts ...HubOption) *Hub {
	if config.BaseURL == "" {
		config.BaseURL = core.DefaultWebsocketURL
	}
	h := &Hub{
		config:   config,
		logger:   zerolog.Nop(),
		sessions: make(map[uuid.UUID]*ws.Session),
		wg:       conc.NewWaitGroup(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe starts a session for endpoint and returns its handle. onMessage
// receives every raw frame of that session.
func (h *Hub) Subscribe(endpoint Endpoint, onMessage func(string)) (Handle, error) {
	if endpoint.RequiresAuth() && h.auth == nil {
		return Handle{}, fmt.Errorf("subscribe %s: %w", endpoint.Name(), core.ErrNoCredentials)
	}

	handle := Handle{ID: uuid.New(), Endpoint: endpoint}
	config := ws.Config{
		Name:              endpoint.Name(),
		URL:               endpoint.URL(h.config.BaseURL),
		ReconnectInterval: h.config.ReconnectInterval,
		HandshakeTimeout:  h.config.HandshakeTimeout,
		ReadTimeout:       h.config.ReadTimeout,
	}
	if endpoint.RequiresAuth() {
		config.Header = h.auth.HandshakeHeader
	}

	logger := h.logger.With().Str("handle", handle.ID.String()).Logger()
	session := ws.NewSession(config, onMessage, ws.WithLogger(logger), ws.WithMetrics(h.metrics))

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return Handle{}, core.ErrClientClosed
	}
	h.sessions[handle.ID] = session
	h.wg.Go(func() {
		if err := session.Run(); err != nil && !errors.Is(err, core.ErrSessionClosed) {
			logger.Error().Err(err).Str("channel", endpoint.Name()).Msg("stream stopped")
		}
	})

	h.logger.Debug().
		Str("channel", endpoint.Name()).
		Str("url", config.URL).
		Str("handle", handle.ID.String()).
		Msg("subscribed")
	return handle, nil
}

// Unsubscribe closes the session of handle and waits for it to stop.
func (h *Hub) Unsubscribe(handle Handle) error {
	h.mu.Lock()
	session, ok := h.sessions[handle.ID]
	delete(h.sessions, handle.ID)
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("unsubscribe %s: %w", handle, core.ErrUnknownHandle)
	}
	return session.Close()
}

// Stream returns the running stream of handle.
func (h *Hub) Stream(handle Handle) (Stream, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.sessions[handle.ID]
	if !ok {
		return nil, false
	}
	return session, true
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close stops every session. A panic inside a session goroutine is returned as an error.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	sessions := make([]*ws.Session, 0, len(h.sessions))
	for id, s := range h.sessions {
		sessions = append(sessions, s)
		delete(h.sessions, id)
	}
	h.mu.Unlock()

	var closers conc.WaitGroup
	for _, s := range sessions {
		closers.Go(func() { _ = s.Close() })
	}
	closers.Wait()

	if recovered := h.wg.WaitAndRecover(); recovered != nil {
		return recovered.AsError()
	}
	return nil
}
