// Package stream describes the BitoPro stream channels and runs
// subscriptions to them.
package stream

import "bitogo/internal/ws"

type ConnState = ws.ConnState

const (
	StateDisconnected   = ws.StateDisconnected
	StateConnecting     = ws.StateConnecting
	StateAuthenticating = ws.StateAuthenticating
	StateOpen           = ws.StateOpen
	StateClosing        = ws.StateClosing
)

// Stream is a running subscription.
type Stream interface {
	Name() string
	State() ConnState
	Done() <-chan struct{}
	Close() error
}

var _ Stream = (*ws.Session)(nil)
