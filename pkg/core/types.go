package core

import (
	"fmt"
	"strconv"
)

// OrderAction represents the direction of an order (buy or sell).
type OrderAction int

// Order action constants define the direction of a trade.
const (
	// ActionBuy indicates an order to purchase an asset.
	ActionBuy OrderAction = iota
	// ActionSell indicates an order to sell an asset.
	ActionSell
)

// String returns the string representation of the order action ("BUY" or "SELL").
func (a OrderAction) String() string {
	return [...]string{"BUY", "SELL"}[a]
}

// MarshalJSON implements json.Marshaler for OrderAction.
func (a OrderAction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderAction.
// It accepts both uppercase and lowercase formats.
func (a *OrderAction) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"BUY"`, `"buy"`:
		*a = ActionBuy
	case `"SELL"`, `"sell"`:
		*a = ActionSell
	default:
		return fmt.Errorf("unknown order action %s", data)
	}
	return nil
}

// OrderType represents the type of order to place on the exchange.
type OrderType int

// Order type constants define how an order is executed.
const (
	// TypeLimit executes at a specified price or better.
	TypeLimit OrderType = iota
	// TypeMarket executes immediately at the best available price.
	TypeMarket
	// TypeStopLimit places a limit order once the stop price condition is met.
	TypeStopLimit
)

// String returns the string representation of the order type.
func (t OrderType) String() string {
	return [...]string{"LIMIT", "MARKET", "STOP_LIMIT"}[t]
}

// MarshalJSON implements json.Marshaler for OrderType.
func (t OrderType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderType.
// It accepts both uppercase and lowercase formats.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"LIMIT"`, `"limit"`:
		*t = TypeLimit
	case `"MARKET"`, `"market"`:
		*t = TypeMarket
	case `"STOP_LIMIT"`, `"stop_limit"`:
		*t = TypeStopLimit
	default:
		return fmt.Errorf("unknown order type %s", data)
	}
	return nil
}

// TimeInForce specifies how long an order remains active.
type TimeInForce string

const (
	// TimeInForceGTC keeps the order until it is filled or cancelled.
	TimeInForceGTC TimeInForce = "GTC"
	// TimeInForcePostOnly cancels the order if it would take liquidity.
	TimeInForcePostOnly TimeInForce = "POST_ONLY"
)

// StatusKind groups order statuses for order history queries.
type StatusKind string

const (
	StatusKindAll  StatusKind = "ALL"
	StatusKindOpen StatusKind = "OPEN"
	StatusKindDone StatusKind = "DONE"
)

// OrderStatus is the numeric order state reported by BitoPro.
type OrderStatus int

const (
	StatusNotTriggered          OrderStatus = -1
	StatusInProgress            OrderStatus = 0
	StatusInProgressPartialDeal OrderStatus = 1
	StatusCompleted             OrderStatus = 2
	StatusCompletedPartialDeal  OrderStatus = 3
	StatusCancelled             OrderStatus = 4
	StatusPostOnlyCancelled     OrderStatus = 6
)

// String returns the string representation of the order status.
func (s OrderStatus) String() string {
	switch s {
	case StatusNotTriggered:
		return "NOT_TRIGGERED"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusInProgressPartialDeal:
		return "IN_PROGRESS_PARTIAL_DEAL"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCompletedPartialDeal:
		return "COMPLETED_PARTIAL_DEAL"
	case StatusCancelled:
		return "CANCELLED"
	case StatusPostOnlyCancelled:
		return "POST_ONLY_CANCELLED"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(s)) + ")"
	}
}

// IsTerminal returns true if the order can no longer change.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCompletedPartialDeal, StatusCancelled, StatusPostOnlyCancelled:
		return true
	default:
		return false
	}
}

// Resolution is the candlestick timeframe.
type Resolution string

const (
	Resolution1m  Resolution = "1m"
	Resolution5m  Resolution = "5m"
	Resolution15m Resolution = "15m"
	Resolution30m Resolution = "30m"
	Resolution1h  Resolution = "1h"
	Resolution3h  Resolution = "3h"
	Resolution6h  Resolution = "6h"
	Resolution12h Resolution = "12h"
	Resolution1d  Resolution = "1d"
	Resolution1w  Resolution = "1w"
	Resolution1M  Resolution = "1M"
)

// WithdrawProtocol selects the network a withdrawal is sent over.
type WithdrawProtocol string

const (
	ProtocolMain  WithdrawProtocol = "MAIN"
	ProtocolERC20 WithdrawProtocol = "ERC20"
	ProtocolOMNI  WithdrawProtocol = "OMNI"
	ProtocolTRX   WithdrawProtocol = "TRX"
	ProtocolBSC   WithdrawProtocol = "BSC"
)

// InvoiceStatus filters deposit and withdrawal history.
type InvoiceStatus string

const (
	InvoiceCancelled   InvoiceStatus = "CANCELLED"
	InvoiceWaitProcess InvoiceStatus = "WAIT_PROCESS"
)
