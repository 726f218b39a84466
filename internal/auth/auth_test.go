package auth

import (
	"encoding/base64"
	"math/bits"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitogo/pkg/core"
)

func TestSign_KnownVector(t *testing.T) {
	got := Sign([]byte("Jefe"), []byte("what do ya want for nothing?"))
	want := "af45d2e376484031617f78d2b58a6b1b9c7ef464f5a01b47e42ec3736322445e8e2240ca5e69e2c78b3239ecfab21649"
	assert.Equal(t, want, got)
}

func TestSign_Deterministic(t *testing.T) {
	secret := []byte("secret")
	message := []byte("eyJpZGVudGl0eSI6IiIsIm5vbmNlIjoxfQ==")

	first := Sign(secret, message)
	assert.Equal(t, first, Sign(secret, message))
	assert.Len(t, first, 96)
	assert.Equal(t, strings.ToLower(first), first)
}

func TestSign_Avalanche(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const rounds = 200
	totalBits := 0

	for i := 0; i < rounds; i++ {
		secret := make([]byte, 16)
		message := make([]byte, 32)
		rng.Read(secret)
		rng.Read(message)

		base := Sign(secret, message)

		flipped := append([]byte(nil), message...)
		flipped[rng.Intn(len(flipped))] ^= 0x01
		changedMsg := Sign(secret, flipped)
		require.NotEqual(t, base, changedMsg)

		flippedKey := append([]byte(nil), secret...)
		flippedKey[rng.Intn(len(flippedKey))] ^= 0x80
		require.NotEqual(t, base, Sign(flippedKey, message))

		totalBits += hammingHex(t, base, changedMsg)
	}

	// 384-bit digest: a single flipped input bit should change about half the output.
	mean := float64(totalBits) / rounds
	assert.InDelta(t, 192, mean, 20)
}

func hammingHex(t *testing.T, a, b string) int {
	t.Helper()
	require.Equal(t, len(a), len(b))
	n := 0
	for i := 0; i < len(a); i++ {
		n += bits.OnesCount8(hexNibble(a[i]) ^ hexNibble(b[i]))
	}
	return n
}

func hexNibble(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}
	return c - '0'
}

func TestBuildHeaders(t *testing.T) {
	payload := NoncePayload{Identity: "me@example.com", Nonce: 1700000000000}

	h, err := BuildHeaders("key", "secret", payload)
	require.NoError(t, err)

	assert.Equal(t, "key", h.APIKey)
	raw, err := base64.StdEncoding.DecodeString(h.Payload)
	require.NoError(t, err)
	assert.Equal(t, `{"identity":"me@example.com","nonce":1700000000000}`, string(raw))
	assert.Equal(t, Sign([]byte("secret"), []byte(h.Payload)), h.Signature)

	header := h.HTTPHeader()
	assert.Equal(t, "key", header.Get(HeaderAPIKey))
	assert.Equal(t, h.Payload, header.Get(HeaderPayload))
	assert.Equal(t, h.Signature, header.Get(HeaderSignature))
	assert.Len(t, h.Map(), 3)
}

func TestBuildHeaders_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		decoded any
	}{
		{
			name:    "nonce",
			payload: NoncePayload{Identity: "a@b.c", Nonce: 42},
			decoded: &NoncePayload{},
		},
		{
			name:    "map",
			payload: map[string][]string{"BTC_TWD": {"1", "2"}, "ETH_TWD": {"3"}},
			decoded: &map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := BuildHeaders("key", "secret", tt.payload)
			require.NoError(t, err)
			require.NoError(t, DecodePayload(h.Payload, tt.decoded))

			switch want := tt.payload.(type) {
			case NoncePayload:
				assert.Equal(t, want, *tt.decoded.(*NoncePayload))
			case map[string][]string:
				assert.Equal(t, want, *tt.decoded.(*map[string][]string))
			}
		})
	}
}

func TestCanonicalize_SortsMapKeys(t *testing.T) {
	data, err := Canonicalize(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(data))
}

func TestCanonicalize_NoHTMLEscape(t *testing.T) {
	payload := struct {
		Condition string `json:"condition"`
		Note      string `json:"note"`
	}{Condition: "<=", Note: "a&b>c"}

	data, err := Canonicalize(payload)
	require.NoError(t, err)
	assert.Equal(t, `{"condition":"<=","note":"a&b>c"}`, string(data))

	h, err := BuildHeaders("key", "secret", payload)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(h.Payload)
	require.NoError(t, err)
	assert.Equal(t, data, raw)
}

func TestBuildHeaders_Errors(t *testing.T) {
	_, err := BuildHeaders("", "secret", NoncePayload{})
	assert.True(t, core.IsSigningError(err))
	assert.True(t, IsCredentialError(err))

	_, err = BuildHeaders("key", "", NoncePayload{})
	assert.True(t, core.IsSigningError(err))

	_, err = BuildHeaders("key", "secret", map[string]any{"ch": make(chan int)})
	assert.True(t, core.IsSigningError(err))
	assert.False(t, IsCredentialError(err))
}

func TestAuthenticator(t *testing.T) {
	_, err := NewAuthenticator(nil, nil)
	assert.ErrorIs(t, err, core.ErrNoCredentials)

	_, err = NewAuthenticator(&core.Credentials{APIKey: "key"}, nil)
	assert.ErrorIs(t, err, core.ErrNoCredentials)

	now := time.UnixMilli(1700000000123)
	a, err := NewAuthenticator(&core.Credentials{Identity: "me@example.com", APIKey: "key", APISecret: "secret"}, func() time.Time { return now })
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", a.Identity())

	h, err := a.NonceHeaders()
	require.NoError(t, err)
	var p NoncePayload
	require.NoError(t, DecodePayload(h.Payload, &p))
	assert.Equal(t, NoncePayload{Identity: "me@example.com", Nonce: 1700000000123}, p)

	header, err := a.HandshakeHeader()
	require.NoError(t, err)
	assert.Equal(t, h.Signature, header.Get(HeaderSignature))

	body := map[string]string{"action": "BUY"}
	sh, canonical, err := a.SignPayload(body)
	require.NoError(t, err)
	assert.Equal(t, `{"action":"BUY"}`, string(canonical))
	assert.Equal(t, base64.StdEncoding.EncodeToString(canonical), sh.Payload)
}

func TestAuthenticator_FreshNoncePerCall(t *testing.T) {
	tick := int64(1000)
	a, err := NewAuthenticator(&core.Credentials{APIKey: "key", APISecret: "secret"}, func() time.Time {
		tick++
		return time.UnixMilli(tick)
	})
	require.NoError(t, err)

	first, err := a.NonceHeaders()
	require.NoError(t, err)
	second, err := a.NonceHeaders()
	require.NoError(t, err)

	assert.NotEqual(t, first.Payload, second.Payload)
	assert.NotEqual(t, first.Signature, second.Signature)
}

func TestNonce(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	assert.Equal(t, ts.UnixMilli(), Nonce(ts))
	assert.Equal(t, NoncePayload{Identity: "x", Nonce: ts.UnixMilli()}, NewNoncePayload("x", ts))
}
