package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitogo/internal/metrics"
	"bitogo/pkg/core"
)

func newTestClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(&Config{BaseURL: url, Timeout: 5 * time.Second}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(&Config{BaseURL: "", Timeout: time.Second})
	assert.Error(t, err)

	_, err = NewClient(&Config{BaseURL: "http://localhost", Timeout: 0})
	assert.Error(t, err)
}

func TestClient_SendQueryOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v3/order-book/btc_twd", r.URL.Path)
		assert.Equal(t, "limit=5&scale=0", r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"asks":[],"bids":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/v3")
	req := core.NewRequest(http.MethodGet, "/order-book/btc_twd").SetQuery("limit", 5).SetQuery("scale", 0)

	resp, err := client.Send(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.False(t, resp.IsError())
}

func TestClient_SendBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "v", r.Header.Get("X-Test"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"b":1,"a":2}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"orderId":"1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	req := core.NewRequest(http.MethodPost, "/orders/btc_twd").
		SetHeader("X-Test", "v").
		SetBody([]byte(`{"b":1,"a":2}`))

	resp, err := client.Send(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "1", out.OrderID)
}

func TestClient_SendNoHeadersLeakBetweenCalls(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-BITOPRO-APIKEY"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Send(context.Background(), core.NewRequest(http.MethodGet, "/a").SetHeader("X-BITOPRO-APIKEY", "key"))
	require.NoError(t, err)
	_, err = client.Send(context.Background(), core.NewRequest(http.MethodGet, "/b"))
	require.NoError(t, err)

	assert.Equal(t, []string{"key", ""}, seen)
}

func TestClient_SendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid pair"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Send(context.Background(), core.NewRequest(http.MethodGet, "/tickers/nope"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, resp.IsError())
	assert.Equal(t, map[string]any{"error": "Invalid pair"}, resp.Map())
}

func TestClient_SendTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	client := newTestClient(t, url, WithMetrics(m))
	_, err = client.Send(context.Background(), core.NewRequest(http.MethodGet, "/tickers"))

	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RESTRequests.WithLabelValues("GET", "0")))
}

func TestClient_SendContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Send(ctx, core.NewRequest(http.MethodGet, "/slow"))
	assert.True(t, core.IsTransportError(err))
}

func TestResponse_Decode(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: []byte(`{"data":`)}

	var v map[string]any
	err := resp.Decode(&v)
	require.Error(t, err)
	assert.True(t, core.IsDecodeError(err))
	assert.Nil(t, resp.Map())
}

func TestResponse_IsSuccess(t *testing.T) {
	tests := []struct {
		status  int
		success bool
		isError bool
	}{
		{200, true, false},
		{204, true, false},
		{302, false, false},
		{404, false, true},
		{500, false, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			resp := &Response{StatusCode: tt.status}
			assert.Equal(t, tt.success, resp.IsSuccess())
			assert.Equal(t, tt.isError, resp.IsError())
		})
	}
}
