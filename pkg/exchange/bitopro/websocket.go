package bitopro

import (
	"bitogo/pkg/stream"
)

// SubscribeOrderBook streams the books of the given pairs, each at its own depth.
func (c *Client) SubscribeOrderBook(handler func(string), limits ...stream.DepthLimit) (stream.Handle, error) {
	return c.hub.Subscribe(stream.OrderBook(limits...), handler)
}

// SubscribeTickers streams the tickers of pairs.
func (c *Client) SubscribeTickers(handler func(string), pairs ...string) (stream.Handle, error) {
	return c.hub.Subscribe(stream.Tickers(pairs...), handler)
}

// SubscribeTrades streams the public trades of pairs.
func (c *Client) SubscribeTrades(handler func(string), pairs ...string) (stream.Handle, error) {
	return c.hub.Subscribe(stream.Trades(pairs...), handler)
}

// SubscribeUserOrders streams the account's open orders. Requires credentials.
func (c *Client) SubscribeUserOrders(handler func(string)) (stream.Handle, error) {
	return c.hub.Subscribe(stream.UserOrders(), handler)
}

// SubscribeUserBalance streams the account balance. Requires credentials.
func (c *Client) SubscribeUserBalance(handler func(string)) (stream.Handle, error) {
	return c.hub.Subscribe(stream.UserBalance(), handler)
}

// SubscribeUserTrades streams the account's fills. Requires credentials.
func (c *Client) SubscribeUserTrades(handler func(string)) (stream.Handle, error) {
	return c.hub.Subscribe(stream.UserTrades(), handler)
}

// Unsubscribe stops the stream of handle.
func (c *Client) Unsubscribe(handle stream.Handle) error {
	return c.hub.Unsubscribe(handle)
}

// Stream returns the live state of a subscription.
func (c *Client) Stream(handle stream.Handle) (stream.Stream, bool) {
	return c.hub.Stream(handle)
}
