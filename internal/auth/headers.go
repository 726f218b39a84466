package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"bitogo/pkg/core"
)

// Header names carried by every signed REST call and stream handshake.
const (
	HeaderAPIKey    = "X-BITOPRO-APIKEY"
	HeaderPayload   = "X-BITOPRO-PAYLOAD"
	HeaderSignature = "X-BITOPRO-SIGNATURE"
)

// Headers is one set of authentication headers. It is built per call and
// never reused because each payload carries its own nonce.
type Headers struct {
	APIKey    string
	Payload   string
	Signature string
}

// Map returns the headers keyed by their wire names.
func (h Headers) Map() map[string]string {
	return map[string]string{
		HeaderAPIKey:    h.APIKey,
		HeaderPayload:   h.Payload,
		HeaderSignature: h.Signature,
	}
}

// HTTPHeader returns a fresh http.Header holding the three headers.
func (h Headers) HTTPHeader() http.Header {
	header := make(http.Header, 3)
	header.Set(HeaderAPIKey, h.APIKey)
	header.Set(HeaderPayload, h.Payload)
	header.Set(HeaderSignature, h.Signature)
	return header
}

// canonicalJSON matches sonic.ConfigStd except that <, > and & are written
// literally, as the exchange verifies the bytes it receives.
var canonicalJSON = sonic.Config{
	SortMapKeys:      true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
}.Froze()

// Canonicalize serializes payload the way it is signed and sent. Struct fields
// keep declaration order and map keys are sorted.
func Canonicalize(payload any) ([]byte, error) {
	data, err := canonicalJSON.Marshal(payload)
	if err != nil {
		return nil, core.NewError(core.KindSigning, "canonicalize payload", err)
	}
	return data, nil
}

// HeadersFor signs already canonical payload bytes. The signed message is the
// base64 text placed in the payload header.
func HeadersFor(apiKey, secret string, canonical []byte) (Headers, error) {
	if apiKey == "" || secret == "" {
		return Headers{}, core.NewError(core.KindSigning, "sign payload", core.ErrNoCredentials)
	}
	encoded := base64.StdEncoding.EncodeToString(canonical)
	return Headers{
		APIKey:    apiKey,
		Payload:   encoded,
		Signature: Sign([]byte(secret), []byte(encoded)),
	}, nil
}

// BuildHeaders canonicalizes payload and signs it.
func BuildHeaders(apiKey, secret string, payload any) (Headers, error) {
	canonical, err := Canonicalize(payload)
	if err != nil {
		return Headers{}, err
	}
	return HeadersFor(apiKey, secret, canonical)
}

// DecodePayload reverses the payload header into v.
func DecodePayload(header string, v any) error {
	data, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return fmt.Errorf("decode payload header: %w", err)
	}
	return sonic.Unmarshal(data, v)
}

// Authenticator binds credentials to a clock and produces headers on demand.
// It is safe for concurrent use.
type Authenticator struct {
	creds core.Credentials
	now   func() time.Time
}

// NewAuthenticator returns an Authenticator for creds. A nil now defaults to time.Now.
func NewAuthenticator(creds *core.Credentials, now func() time.Time) (*Authenticator, error) {
	if !creds.Valid() {
		return nil, core.ErrNoCredentials
	}
	if now == nil {
		now = time.Now
	}
	return &Authenticator{creds: *creds, now: now}, nil
}

// Identity returns the account identity placed in nonce payloads.
func (a *Authenticator) Identity() string {
	return a.creds.Identity
}

// NonceHeaders signs a fresh {identity, nonce} payload.
func (a *Authenticator) NonceHeaders() (Headers, error) {
	return BuildHeaders(a.creds.APIKey, a.creds.APISecret, NewNoncePayload(a.creds.Identity, a.now()))
}

// SignPayload signs payload and returns the headers together with the
// canonical bytes, which must be sent unchanged as the request body.
func (a *Authenticator) SignPayload(payload any) (Headers, []byte, error) {
	canonical, err := Canonicalize(payload)
	if err != nil {
		return Headers{}, nil, err
	}
	h, err := HeadersFor(a.creds.APIKey, a.creds.APISecret, canonical)
	if err != nil {
		return Headers{}, nil, err
	}
	return h, canonical, nil
}

// HandshakeHeader returns the headers for a stream handshake. Each call
// carries a new nonce.
func (a *Authenticator) HandshakeHeader() (http.Header, error) {
	h, err := a.NonceHeaders()
	if err != nil {
		return nil, err
	}
	return h.HTTPHeader(), nil
}

// Now returns the authenticator's current time.
func (a *Authenticator) Now() time.Time {
	return a.now()
}

// IsCredentialError reports whether err came from missing credentials.
func IsCredentialError(err error) bool {
	return errors.Is(err, core.ErrNoCredentials)
}
