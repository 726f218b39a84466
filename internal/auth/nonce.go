package auth

import "time"

// NoncePayload is the payload signed for reads, cancels and stream handshakes.
type NoncePayload struct {
	Identity string `json:"identity"`
	Nonce    int64  `json:"nonce"`
}

// Nonce returns now in milliseconds since the Unix epoch. Two calls within
// the same millisecond yield the same nonce.
func Nonce(now time.Time) int64 {
	return now.UnixMilli()
}

// NewNoncePayload returns a payload for identity stamped with now.
func NewNoncePayload(identity string, now time.Time) NoncePayload {
	return NoncePayload{Identity: identity, Nonce: Nonce(now)}
}
