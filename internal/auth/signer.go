// Package auth signs BitoPro requests. It is shared by the REST client and
// the stream sessions; nothing in it performs I/O.
package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Sign returns the lowercase hex HMAC-SHA384 of message keyed with secret.
func Sign(secret, message []byte) string {
	h := hmac.New(sha512.New384, secret)
	h.Write(message)
	return hex.EncodeToString(h.Sum(nil))
}
