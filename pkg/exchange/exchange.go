package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-playground/validator/v10"

	"bitogo/pkg/core"
	"bitogo/pkg/stream"
)

// MarketData is the public REST surface. None of its calls are signed.
type MarketData interface {
	GetCurrencies(ctx context.Context) ([]core.Currency, error)
	GetLimitationsAndFees(ctx context.Context) (map[string]any, error)
	GetTradingPairs(ctx context.Context) ([]core.TradingPair, error)
	GetOrderBook(ctx context.Context, pair string, opts ...Option) (*core.OrderBook, error)
	GetTicker(ctx context.Context, pair string) (*core.Ticker, error)
	GetTickers(ctx context.Context) ([]core.Ticker, error)
	GetTrades(ctx context.Context, pair string) ([]core.Trade, error)
	GetCandlesticks(ctx context.Context, pair string, resolution core.Resolution, from, to time.Time) ([]core.Candlestick, error)
}

// Account is the signed REST surface.
type Account interface {
	GetAccountBalance(ctx context.Context) ([]core.Balance, error)

	CreateOrder(ctx context.Context, req *OrderRequest) (*core.OrderResult, error)
	CreateBatchOrders(ctx context.Context, reqs []OrderRequest) ([]core.OrderResult, error)
	CancelOrder(ctx context.Context, pair, orderID string) (*core.OrderResult, error)
	CancelAllOrders(ctx context.Context, pair string) (core.CancelledOrders, error)
	CancelBatchOrders(ctx context.Context, orders core.CancelledOrders) (core.CancelledOrders, error)
	GetOrder(ctx context.Context, pair, orderID string) (*core.Order, error)
	GetAllOrders(ctx context.Context, pair string, opts ...Option) ([]core.Order, error)
	GetTradesList(ctx context.Context, pair string, opts ...Option) ([]core.Fill, error)

	GetDepositHistory(ctx context.Context, currency string, opts ...Option) ([]core.Invoice, error)
	GetWithdrawHistory(ctx context.Context, currency string, opts ...Option) ([]core.Invoice, error)
	GetWithdraw(ctx context.Context, currency, serial string) (*core.Invoice, error)
	Withdraw(ctx context.Context, currency string, req *WithdrawRequest) (*core.Invoice, error)
}

// Streams opens and closes stream subscriptions. Handlers receive raw frames.
type Streams interface {
	SubscribeOrderBook(handler func(string), limits ...stream.DepthLimit) (stream.Handle, error)
	SubscribeTickers(handler func(string), pairs ...string) (stream.Handle, error)
	SubscribeTrades(handler func(string), pairs ...string) (stream.Handle, error)
	SubscribeUserOrders(handler func(string)) (stream.Handle, error)
	SubscribeUserBalance(handler func(string)) (stream.Handle, error)
	SubscribeUserTrades(handler func(string)) (stream.Handle, error)
	Unsubscribe(handle stream.Handle) error
}

// Exchange is the complete BitoPro client.
type Exchange interface {
	Name() string
	Version() string

	MarketData
	Account
	Streams

	Close() error
}

// OrderRequest contains the parameters of a new order.
type OrderRequest struct {
	Pair        string `validate:"required"`
	Action      core.OrderAction
	Type        core.OrderType
	Price       apd.Decimal
	Amount      apd.Decimal
	TimeInForce core.TimeInForce `validate:"omitempty,oneof=GTC POST_ONLY"`
	// StopPrice and Condition are only sent for stop limit orders.
	StopPrice apd.Decimal
	Condition string `validate:"omitempty,oneof=>= <="`
	ClientID  int    `validate:"min=0,max=2147483647"`
}

// WithdrawRequest contains the parameters of a withdrawal.
type WithdrawRequest struct {
	Protocol core.WithdrawProtocol `validate:"omitempty,oneof=MAIN ERC20 OMNI TRX BSC"`
	Address  string                `validate:"required"`
	Amount   apd.Decimal
	Message  string
}

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidPrice     = errors.New("limit orders need a positive price")
	ErrMissingStopPrice = errors.New("stop limit orders need a stop price and condition")
)

var validate = validator.New()

// Validate checks the request before it is signed.
func (r *OrderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid order request: %w", err)
	}
	if r.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if r.Type != core.TypeMarket && r.Price.Sign() <= 0 {
		return ErrInvalidPrice
	}
	if r.Type == core.TypeStopLimit && (r.StopPrice.Sign() <= 0 || r.Condition == "") {
		return ErrMissingStopPrice
	}
	return nil
}

// Validate checks the request before it is signed.
func (r *WithdrawRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid withdraw request: %w", err)
	}
	if r.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
