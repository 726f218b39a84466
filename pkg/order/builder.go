// Package order builds validated BitoPro order requests.
package order

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"bitogo/pkg/core"
	"bitogo/pkg/exchange"
)

// Builder provides a fluent interface for constructing order requests.
// It keeps the first parse error and reports it on Build.
//
// Example:
//
//	req, err := order.NewBuilder("btc_twd").
//	    Buy().
//	    Limit().
//	    Price("1500000").
//	    Amount("0.001").
//	    PostOnly().
//	    Build()
type Builder struct {
	req *exchange.OrderRequest
	err error
}

// NewBuilder creates a builder for pair. Orders default to limit buys.
func NewBuilder(pair string) *Builder {
	return &Builder{
		req: &exchange.OrderRequest{
			Pair:   pair,
			Action: core.ActionBuy,
			Type:   core.TypeLimit,
		},
	}
}

func (b *Builder) Action(action core.OrderAction) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Action = action
	return b
}

func (b *Builder) Buy() *Builder {
	return b.Action(core.ActionBuy)
}

func (b *Builder) Sell() *Builder {
	return b.Action(core.ActionSell)
}

func (b *Builder) Type(orderType core.OrderType) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Type = orderType
	return b
}

// Market makes a market order. BitoPro market orders are always GTC.
func (b *Builder) Market() *Builder {
	return b.Type(core.TypeMarket)
}

func (b *Builder) Limit() *Builder {
	return b.Type(core.TypeLimit)
}

// StopLimit makes a stop limit order triggered when the last price meets
// condition (">=" or "<=") against stopPrice.
func (b *Builder) StopLimit(stopPrice, condition string) *Builder {
	b.Type(core.TypeStopLimit)
	if b.err != nil {
		return b
	}
	if _, _, err := b.req.StopPrice.SetString(stopPrice); err != nil {
		b.err = fmt.Errorf("parse stop price: %w", err)
		return b
	}
	b.req.Condition = condition
	return b
}

// Price sets the limit price from its decimal text.
func (b *Builder) Price(price string) *Builder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.req.Price.SetString(price); err != nil {
		b.err = fmt.Errorf("parse price: %w", err)
	}
	return b
}

func (b *Builder) PriceDecimal(price apd.Decimal) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Price.Set(&price)
	return b
}

// Amount sets the order size from its decimal text.
func (b *Builder) Amount(amount string) *Builder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.req.Amount.SetString(amount); err != nil {
		b.err = fmt.Errorf("parse amount: %w", err)
	}
	return b
}

func (b *Builder) AmountDecimal(amount apd.Decimal) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Amount.Set(&amount)
	return b
}

func (b *Builder) TimeInForce(tif core.TimeInForce) *Builder {
	if b.err != nil {
		return b
	}
	b.req.TimeInForce = tif
	return b
}

func (b *Builder) GTC() *Builder {
	return b.TimeInForce(core.TimeInForceGTC)
}

// PostOnly cancels the order instead of letting it take liquidity.
func (b *Builder) PostOnly() *Builder {
	return b.TimeInForce(core.TimeInForcePostOnly)
}

// ClientID tags the order with a caller chosen id between 1 and 2147483647.
func (b *Builder) ClientID(id int) *Builder {
	if b.err != nil {
		return b
	}
	b.req.ClientID = id
	return b
}

// Build validates and returns the request.
func (b *Builder) Build() (*exchange.OrderRequest, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.req.Validate(); err != nil {
		return nil, err
	}
	return b.req, nil
}
