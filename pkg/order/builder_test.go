package order

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitogo/pkg/core"
	"bitogo/pkg/exchange"
)

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name       string
		build      func() (*exchange.OrderRequest, error)
		wantErr    error
		errContain string
	}{
		{
			name: "valid limit buy order",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Buy().Limit().Price("1500000").Amount("0.1").GTC().Build()
			},
		},
		{
			name: "valid market sell order",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("eth_twd").Sell().Market().Amount("1.5").Build()
			},
		},
		{
			name: "valid stop limit order",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Sell().StopLimit("1400000", "<=").Price("1390000").Amount("0.1").Build()
			},
		},
		{
			name: "valid order with decimals",
			build: func() (*exchange.OrderRequest, error) {
				price, _, _ := apd.NewFromString("50000.50")
				amount, _, _ := apd.NewFromString("2")
				return NewBuilder("btc_usdt").PriceDecimal(*price).AmountDecimal(*amount).PostOnly().ClientID(12).Build()
			},
		},
		{
			name: "invalid price string",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Price("abc").Amount("1").Build()
			},
			errContain: "parse price",
		},
		{
			name: "invalid amount string",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Price("1").Amount("1..2").Build()
			},
			errContain: "parse amount",
		},
		{
			name: "invalid stop price string",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").StopLimit("x", ">=").Price("1").Amount("1").Build()
			},
			errContain: "parse stop price",
		},
		{
			name: "first error is kept",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Price("bad").Amount("also bad").Build()
			},
			errContain: "parse price",
		},
		{
			name: "missing amount",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Price("1").Build()
			},
			wantErr: exchange.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Price("1").Amount("-1").Build()
			},
			wantErr: exchange.ErrInvalidAmount,
		},
		{
			name: "limit without price",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").Amount("1").Build()
			},
			wantErr: exchange.ErrInvalidPrice,
		},
		{
			name: "missing pair",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("").Price("1").Amount("1").Build()
			},
			errContain: "invalid order request",
		},
		{
			name: "bad condition",
			build: func() (*exchange.OrderRequest, error) {
				return NewBuilder("btc_twd").StopLimit("1", "==").Price("1").Amount("1").Build()
			},
			errContain: "invalid order request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.build()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, req)
			case tt.errContain != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				assert.Nil(t, req)
			default:
				require.NoError(t, err)
				assert.NotNil(t, req)
			}
		})
	}
}

func TestBuilder_Fields(t *testing.T) {
	req, err := NewBuilder("btc_twd").
		Sell().
		StopLimit("950", ">=").
		Price("900").
		Amount("0.25").
		PostOnly().
		ClientID(42).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "btc_twd", req.Pair)
	assert.Equal(t, core.ActionSell, req.Action)
	assert.Equal(t, core.TypeStopLimit, req.Type)
	assert.Equal(t, "900", req.Price.String())
	assert.Equal(t, "0.25", req.Amount.String())
	assert.Equal(t, "950", req.StopPrice.String())
	assert.Equal(t, ">=", req.Condition)
	assert.Equal(t, core.TimeInForcePostOnly, req.TimeInForce)
	assert.Equal(t, 42, req.ClientID)
}

func TestBuilder_Defaults(t *testing.T) {
	req, err := NewBuilder("btc_twd").Price("1").Amount("1").Build()
	require.NoError(t, err)
	assert.Equal(t, core.ActionBuy, req.Action)
	assert.Equal(t, core.TypeLimit, req.Type)
	assert.Empty(t, req.TimeInForce)
}
