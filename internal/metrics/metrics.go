// Package metrics exposes prometheus collectors for REST calls and stream
// sessions. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bitopro"

// Metrics groups the collectors of one client.
type Metrics struct {
	RESTRequests *prometheus.CounterVec
	RESTLatency  *prometheus.HistogramVec

	StreamConnects    *prometheus.CounterVec
	StreamDisconnects *prometheus.CounterVec
	StreamMessages    *prometheus.CounterVec
	StreamState       *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RESTRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rest_requests_total",
				Help:      "REST calls by method and HTTP status; status 0 means no response.",
			},
			[]string{"method", "status"},
		),
		RESTLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rest_request_duration_seconds",
				Help:      "REST round-trip latency.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		StreamConnects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_connects_total",
				Help:      "Successful stream handshakes.",
			},
			[]string{"channel"},
		),
		StreamDisconnects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_disconnects_total",
				Help:      "Stream drops and failed handshakes.",
			},
			[]string{"channel"},
		),
		StreamMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_messages_total",
				Help:      "Frames relayed to subscribers.",
			},
			[]string{"channel"},
		),
		StreamState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stream_state",
				Help:      "Current session state (0=disconnected 1=connecting 2=authenticating 3=open 4=closing).",
			},
			[]string{"channel"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.RESTRequests, m.RESTLatency,
		m.StreamConnects, m.StreamDisconnects, m.StreamMessages, m.StreamState,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveREST records one REST call.
func (m *Metrics) ObserveREST(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RESTRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RESTLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) StreamConnected(channel string) {
	if m == nil {
		return
	}
	m.StreamConnects.WithLabelValues(channel).Inc()
}

func (m *Metrics) StreamDropped(channel string) {
	if m == nil {
		return
	}
	m.StreamDisconnects.WithLabelValues(channel).Inc()
}

func (m *Metrics) StreamMessage(channel string) {
	if m == nil {
		return
	}
	m.StreamMessages.WithLabelValues(channel).Inc()
}

// SetStreamState publishes the numeric session state.
func (m *Metrics) SetStreamState(channel string, state int) {
	if m == nil {
		return
	}
	m.StreamState.WithLabelValues(channel).Set(float64(state))
}
