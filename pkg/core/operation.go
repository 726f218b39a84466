package core

import (
	"fmt"
	"net/http"
)

// Operation represents a REST call supported by the BitoPro API.
type Operation int

// Operation constants define all supported REST operations.
const (
	// OpGetCurrencies lists currency provisioning info.
	OpGetCurrencies Operation = iota
	// OpGetLimitationsAndFees lists trading limits and fee tiers.
	OpGetLimitationsAndFees
	// OpGetTradingPairs lists the pairs available for trade.
	OpGetTradingPairs
	// OpGetOrderBook retrieves the current order book depth.
	OpGetOrderBook
	// OpGetTicker retrieves the ticker for one pair.
	OpGetTicker
	// OpGetTickers retrieves tickers for every pair.
	OpGetTickers
	// OpGetTrades retrieves recent public trades for a pair.
	OpGetTrades
	// OpGetCandlesticks retrieves OHLCV data.
	OpGetCandlesticks
	// OpGetAccountBalance retrieves account balances.
	OpGetAccountBalance
	// OpCreateOrder submits a new order.
	OpCreateOrder
	// OpCreateBatchOrders submits several orders at once.
	OpCreateBatchOrders
	// OpCancelOrder cancels one order.
	OpCancelOrder
	// OpCancelAllOrders cancels every open order of a pair.
	OpCancelAllOrders
	// OpCancelBatchOrders cancels a set of orders grouped by pair.
	OpCancelBatchOrders
	// OpGetOrder retrieves one order.
	OpGetOrder
	// OpGetAllOrders retrieves order history for a pair.
	OpGetAllOrders
	// OpGetTradesList retrieves the account's fills for a pair.
	OpGetTradesList
	// OpGetDepositHistory retrieves deposit invoices.
	OpGetDepositHistory
	// OpGetWithdrawHistory retrieves withdrawal invoices.
	OpGetWithdrawHistory
	// OpGetWithdraw retrieves one withdrawal invoice.
	OpGetWithdraw
	// OpWithdraw creates a withdrawal invoice.
	OpWithdraw
)

// Route is the HTTP method and path template of an operation.
// Path placeholders are filled in order by Operation.Path.
type Route struct {
	Method  string
	Path    string
	Private bool
}

var routes = [...]Route{
	OpGetCurrencies:         {http.MethodGet, "/provisioning/currencies", false},
	OpGetLimitationsAndFees: {http.MethodGet, "/provisioning/limitations-and-fees", false},
	OpGetTradingPairs:       {http.MethodGet, "/provisioning/trading-pairs", false},
	OpGetOrderBook:          {http.MethodGet, "/order-book/%s", false},
	OpGetTicker:             {http.MethodGet, "/tickers/%s", false},
	OpGetTickers:            {http.MethodGet, "/tickers", false},
	OpGetTrades:             {http.MethodGet, "/trades/%s", false},
	OpGetCandlesticks:       {http.MethodGet, "/trading-history/%s", false},
	OpGetAccountBalance:     {http.MethodGet, "/accounts/balance", true},
	OpCreateOrder:           {http.MethodPost, "/orders/%s", true},
	OpCreateBatchOrders:     {http.MethodPost, "/orders/batch", true},
	OpCancelOrder:           {http.MethodDelete, "/orders/%s/%s", true},
	OpCancelAllOrders:       {http.MethodDelete, "/orders/%s", true},
	OpCancelBatchOrders:     {http.MethodPut, "/orders", true},
	OpGetOrder:              {http.MethodGet, "/orders/%s/%s", true},
	OpGetAllOrders:          {http.MethodGet, "/orders/all/%s", true},
	OpGetTradesList:         {http.MethodGet, "/orders/trades/%s", true},
	OpGetDepositHistory:     {http.MethodGet, "/wallet/depositHistory/%s", true},
	OpGetWithdrawHistory:    {http.MethodGet, "/wallet/withdrawHistory/%s", true},
	OpGetWithdraw:           {http.MethodGet, "/wallet/withdraw/%s/%s", true},
	OpWithdraw:              {http.MethodPost, "/wallet/withdraw/%s", true},
}

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"GET_CURRENCIES",
		"GET_LIMITATIONS_AND_FEES",
		"GET_TRADING_PAIRS",
		"GET_ORDER_BOOK",
		"GET_TICKER",
		"GET_TICKERS",
		"GET_TRADES",
		"GET_CANDLESTICKS",
		"GET_ACCOUNT_BALANCE",
		"CREATE_ORDER",
		"CREATE_BATCH_ORDERS",
		"CANCEL_ORDER",
		"CANCEL_ALL_ORDERS",
		"CANCEL_BATCH_ORDERS",
		"GET_ORDER",
		"GET_ALL_ORDERS",
		"GET_TRADES_LIST",
		"GET_DEPOSIT_HISTORY",
		"GET_WITHDRAW_HISTORY",
		"GET_WITHDRAW",
		"WITHDRAW",
	}[o]
}

// Route returns the method and path template of the operation.
func (o Operation) Route() Route {
	return routes[o]
}

// Private reports whether the operation must be signed.
func (o Operation) Private() bool {
	return routes[o].Private
}

// Request builds a request for the operation, filling path placeholders with args.
func (o Operation) Request(args ...any) *Request {
	r := routes[o]
	path := r.Path
	if len(args) > 0 {
		path = fmt.Sprintf(r.Path, args...)
	}
	return NewRequest(r.Method, path)
}
