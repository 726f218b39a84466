package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		name string
		kind ErrorKind
		want string
	}{
		{"unknown", KindUnknown, "UNKNOWN"},
		{"signing", KindSigning, "SIGNING"},
		{"transport", KindTransport, "TRANSPORT"},
		{"protocol", KindProtocol, "PROTOCOL"},
		{"connection_dropped", KindConnectionDropped, "CONNECTION_DROPPED"},
		{"decode", KindDecode, "DECODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with_status",
			err:  &Error{Kind: KindProtocol, Op: "GET /accounts/balance", StatusCode: 401, Message: "Invalid signature"},
			want: "[bitopro] PROTOCOL GET /accounts/balance (401): Invalid signature",
		},
		{
			name: "without_status",
			err:  NewError(KindTransport, "GET /tickers", errors.New("connection refused")),
			want: "[bitopro] TRANSPORT GET /tickers: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNewProtocolError(t *testing.T) {
	raw := []byte(`{"error":"Order not found"}`)
	err := NewProtocolError("GET /orders/btc_twd/1", http.StatusNotFound, raw, map[string]any{"error": "Order not found"})

	assert.Equal(t, "Order not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, raw, err.Raw)

	plain := NewProtocolError("GET /tickers", http.StatusBadGateway, []byte("bad gateway"), nil)
	assert.Equal(t, "bad gateway", plain.Message)
	assert.Nil(t, plain.Body)
}

func TestErrorPredicates(t *testing.T) {
	cause := errors.New("boom")
	wrapped := fmt.Errorf("get balance: %w", NewError(KindTransport, "GET /accounts/balance", cause))

	assert.True(t, IsTransportError(wrapped))
	assert.False(t, IsProtocolError(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Zero(t, StatusCode(wrapped))

	assert.True(t, IsSigningError(NewError(KindSigning, "sign", cause)))
	assert.True(t, IsDecodeError(NewError(KindDecode, "decode", cause)))
	assert.True(t, IsConnectionDropped(NewError(KindConnectionDropped, "tickers", cause)))
	assert.False(t, IsTransportError(cause))
	assert.False(t, IsTransportError(nil))
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		status    int
		auth      bool
		notFound  bool
		throttled bool
		server    bool
	}{
		{http.StatusUnauthorized, true, false, false, false},
		{http.StatusForbidden, true, false, false, false},
		{http.StatusNotFound, false, true, false, false},
		{http.StatusTooManyRequests, false, false, true, false},
		{http.StatusServiceUnavailable, false, false, false, true},
		{http.StatusBadRequest, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := NewProtocolError("op", tt.status, nil, nil)
			assert.Equal(t, tt.auth, IsAuthError(err))
			assert.Equal(t, tt.notFound, IsNotFound(err))
			assert.Equal(t, tt.throttled, IsThrottled(err))
			assert.Equal(t, tt.server, IsServerError(err))
		})
	}

	assert.False(t, IsServerError(NewError(KindTransport, "op", errors.New("x"))))
}
