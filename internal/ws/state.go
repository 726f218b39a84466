package ws

import "sync/atomic"

// ConnState represents the current state of a stream session.
type ConnState int32

// Session states. A session cycles Disconnected, Connecting, Authenticating
// (private channels only), Open and back to Disconnected until it is closed.
const (
	// StateDisconnected indicates no socket is held.
	StateDisconnected ConnState = iota
	// StateConnecting indicates a handshake is being prepared or dialed.
	StateConnecting
	// StateAuthenticating indicates a handshake carrying signed headers is in flight.
	StateAuthenticating
	// StateOpen indicates frames are being relayed.
	StateOpen
	// StateClosing indicates a local shutdown is in progress.
	StateClosing
)

// String returns the string representation of the connection state.
func (s ConnState) String() string {
	return [...]string{
		"disconnected",
		"connecting",
		"authenticating",
		"open",
		"closing",
	}[s]
}

// State provides thread-safe atomic access to a ConnState value.
type State struct {
	state atomic.Int32
}

// Load returns the current connection state.
func (s *State) Load() ConnState {
	return ConnState(s.state.Load())
}

// Store sets the connection state to the given value.
func (s *State) Store(state ConnState) {
	s.state.Store(int32(state))
}

// CompareAndSwap atomically compares the current state with old and swaps to new if equal.
// It returns true if the swap was performed.
func (s *State) CompareAndSwap(old, new ConnState) bool {
	return s.state.CompareAndSwap(int32(old), int32(new))
}
