package stream

import (
	"strconv"
	"strings"
)

// Kind identifies one of the six stream channels.
type Kind int

const (
	// KindOrderBook streams order book snapshots per pair and depth.
	KindOrderBook Kind = iota
	// KindTickers streams 24 hour tickers.
	KindTickers
	// KindTrades streams public trades.
	KindTrades
	// KindUserOrders streams the account's open orders.
	KindUserOrders
	// KindUserBalance streams the account balance.
	KindUserBalance
	// KindUserTrades streams the account's fills.
	KindUserTrades
)

var channels = [...]struct {
	name string
	path string
	auth bool
}{
	KindOrderBook:   {"ORDER_BOOK", "/pub/order-books/", false},
	KindTickers:     {"TICKERS", "/pub/tickers/", false},
	KindTrades:      {"TRADES", "/pub/trades/", false},
	KindUserOrders:  {"USER_ORDERS", "/pub/auth/orders", true},
	KindUserBalance: {"USER_BALANCE", "/pub/auth/account-balance", true},
	KindUserTrades:  {"USER_TRADES", "/pub/auth/user-trades", true},
}

// String returns the channel name used in logs and metrics.
func (k Kind) String() string {
	return channels[k].name
}

// DepthLimit requests limit price levels of one order book.
type DepthLimit struct {
	Symbol string
	Limit  int
}

// Endpoint describes one stream: which channel and which subscription
// parameters. It is immutable; constructors copy their arguments.
type Endpoint struct {
	kind   Kind
	params []string
}

// OrderBook subscribes to order books, rendered as symbol:limit pairs in the
// given order.
func OrderBook(depths ...DepthLimit) Endpoint {
	params := make([]string, len(depths))
	for i, d := range depths {
		params[i] = strings.ToLower(d.Symbol) + ":" + strconv.Itoa(d.Limit)
	}
	return Endpoint{kind: KindOrderBook, params: params}
}

// Tickers subscribes to tickers of symbols.
func Tickers(symbols ...string) Endpoint {
	return Endpoint{kind: KindTickers, params: lower(symbols)}
}

// Trades subscribes to public trades of symbols.
func Trades(symbols ...string) Endpoint {
	return Endpoint{kind: KindTrades, params: lower(symbols)}
}

// UserOrders subscribes to the account's order updates.
func UserOrders() Endpoint {
	return Endpoint{kind: KindUserOrders}
}

// UserBalance subscribes to the account's balance updates.
func UserBalance() Endpoint {
	return Endpoint{kind: KindUserBalance}
}

// UserTrades subscribes to the account's fills.
func UserTrades() Endpoint {
	return Endpoint{kind: KindUserTrades}
}

func lower(symbols []string) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Kind returns the channel of e.
func (e Endpoint) Kind() Kind {
	return e.kind
}

// Name returns the channel name, such as ORDER_BOOK.
func (e Endpoint) Name() string {
	return e.kind.String()
}

// RequiresAuth reports whether the handshake must carry signed headers.
func (e Endpoint) RequiresAuth() bool {
	return channels[e.kind].auth
}

// Params returns a copy of the rendered subscription parameters.
func (e Endpoint) Params() []string {
	return append([]string(nil), e.params...)
}

// Path returns the channel path with its comma-joined parameters.
func (e Endpoint) Path() string {
	return channels[e.kind].path + strings.Join(e.params, ",")
}

// URL joins base, normally the versioned stream root, with Path.
func (e Endpoint) URL(base string) string {
	return strings.TrimRight(base, "/") + e.Path()
}

func (e Endpoint) String() string {
	return e.Name() + " " + e.Path()
}
