package exchange

import (
	"time"

	"bitogo/pkg/core"
)

type Option func(*Options)

// Options holds the optional query parameters of market and history calls.
// Limit and Statuses fall back to the call's own default unless their option
// was applied, so WithLimit(0) still sends limit=0.
type Options struct {
	Limit           int
	Scale           int
	StartTime       time.Time
	EndTime         time.Time
	IgnoreTimeLimit bool
	StatusKind      core.StatusKind
	Status          *core.OrderStatus
	OrderID         string
	ClientID        int
	TradeID         string
	FromID          string
	Statuses        []core.InvoiceStatus

	limitSet    bool
	statusesSet bool
}

// WithLimit sets the number of rows or price levels returned. Zero is sent as is.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
		o.limitSet = true
	}
}

// WithScale sets the price aggregation level of an order book.
func WithScale(scale int) Option {
	return func(o *Options) {
		o.Scale = scale
	}
}

// WithTimeRange bounds a history call. A zero time leaves that bound unset.
func WithTimeRange(start, end time.Time) Option {
	return func(o *Options) {
		o.StartTime = start
		o.EndTime = end
	}
}

// WithIgnoreTimeLimit lists open orders without the default time window.
func WithIgnoreTimeLimit() Option {
	return func(o *Options) {
		o.IgnoreTimeLimit = true
	}
}

// WithStatusKind selects OPEN, DONE or ALL orders.
func WithStatusKind(kind core.StatusKind) Option {
	return func(o *Options) {
		o.StatusKind = kind
	}
}

// WithStatus filters orders by one status code.
func WithStatus(status core.OrderStatus) Option {
	return func(o *Options) {
		o.Status = &status
	}
}

// WithOrderID starts an order list at orderID, or filters fills by it.
func WithOrderID(orderID string) Option {
	return func(o *Options) {
		o.OrderID = orderID
	}
}

// WithClientID filters orders by the caller's client ID.
func WithClientID(clientID int) Option {
	return func(o *Options) {
		o.ClientID = clientID
	}
}

// WithTradeID filters fills by trade ID.
func WithTradeID(tradeID string) Option {
	return func(o *Options) {
		o.TradeID = tradeID
	}
}

// WithFromID starts an invoice list at id.
func WithFromID(id string) Option {
	return func(o *Options) {
		o.FromID = id
	}
}

// WithStatuses filters invoices by status. Called with no statuses it removes
// the filter entirely.
func WithStatuses(statuses ...core.InvoiceStatus) Option {
	return func(o *Options) {
		o.Statuses = statuses
		o.statusesSet = true
	}
}

// ApplyOptions folds opts into a fresh Options.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LimitOr returns the configured limit, or def when WithLimit was not applied.
func (o *Options) LimitOr(def int) int {
	if o.limitSet {
		return o.Limit
	}
	return def
}

// StatusesOr returns the configured invoice statuses, or def when
// WithStatuses was not applied.
func (o *Options) StatusesOr(def ...core.InvoiceStatus) []core.InvoiceStatus {
	if o.statusesSet {
		return o.Statuses
	}
	return def
}

// HasTimeRange reports whether a start or end time was set.
func (o *Options) HasTimeRange() bool {
	return !o.StartTime.IsZero() || !o.EndTime.IsZero()
}
