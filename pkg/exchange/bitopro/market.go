package bitopro

import (
	"context"
	"time"

	"bitogo/pkg/core"
	"bitogo/pkg/exchange"
)

const defaultDepthLimit = 5

// GetCurrencies lists deposit and withdrawal settings of every currency.
func (c *Client) GetCurrencies(ctx context.Context) ([]core.Currency, error) {
	var out envelope[[]core.Currency]
	if err := c.public(ctx, core.OpGetCurrencies, core.OpGetCurrencies.Request(), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetLimitationsAndFees returns the fee schedule and limits as sent by the exchange.
func (c *Client) GetLimitationsAndFees(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.public(ctx, core.OpGetLimitationsAndFees, core.OpGetLimitationsAndFees.Request(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTradingPairs retrieves the pairs open for trading with their precision and limits.
func (c *Client) GetTradingPairs(ctx context.Context) ([]core.TradingPair, error) {
	var out envelope[[]core.TradingPair]
	if err := c.public(ctx, core.OpGetTradingPairs, core.OpGetTradingPairs.Request(), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetOrderBook retrieves the book of pair. Without options it asks for five
// levels at scale 0.
func (c *Client) GetOrderBook(ctx context.Context, pair string, opts ...exchange.Option) (*core.OrderBook, error) {
	options := exchange.ApplyOptions(opts...)

	req := core.OpGetOrderBook.Request(pair).
		SetQuery("limit", options.LimitOr(defaultDepthLimit)).
		SetQuery("scale", options.Scale)

	var book core.OrderBook
	if err := c.public(ctx, core.OpGetOrderBook, req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetTicker retrieves the 24 hour ticker of pair.
func (c *Client) GetTicker(ctx context.Context, pair string) (*core.Ticker, error) {
	var out envelope[core.Ticker]
	if err := c.public(ctx, core.OpGetTicker, core.OpGetTicker.Request(pair), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetTickers retrieves the ticker of every pair.
func (c *Client) GetTickers(ctx context.Context) ([]core.Ticker, error) {
	var out envelope[[]core.Ticker]
	if err := c.public(ctx, core.OpGetTickers, core.OpGetTickers.Request(), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetTrades retrieves the latest public trades of pair.
func (c *Client) GetTrades(ctx context.Context, pair string) ([]core.Trade, error) {
	var out envelope[[]core.Trade]
	if err := c.public(ctx, core.OpGetTrades, core.OpGetTrades.Request(pair), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetCandlesticks retrieves bars of pair between from and to. Both bounds are
// sent in Unix seconds.
func (c *Client) GetCandlesticks(ctx context.Context, pair string, resolution core.Resolution, from, to time.Time) ([]core.Candlestick, error) {
	req := core.OpGetCandlesticks.Request(pair).
		SetQuery("resolution", string(resolution)).
		SetQuery("from", from.Unix()).
		SetQuery("to", to.Unix())

	var out envelope[[]core.Candlestick]
	if err := c.public(ctx, core.OpGetCandlesticks, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
