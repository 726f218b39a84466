package bitopro

import (
	"context"
	"strings"

	"bitogo/pkg/core"
	"bitogo/pkg/exchange"
)

const (
	defaultHistoryLimit = 100
	allPairs            = "all"
)

// orderPayload is the signed body of an order. Field order is the wire order.
type orderPayload struct {
	Pair        string `json:"pair,omitempty"`
	Action      string `json:"action"`
	Amount      string `json:"amount"`
	Price       string `json:"price,omitempty"`
	Timestamp   int64  `json:"timestamp"`
	Type        string `json:"type"`
	TimeInForce string `json:"timeInForce,omitempty"`
	Condition   string `json:"condition,omitempty"`
	StopPrice   string `json:"stopPrice,omitempty"`
	ClientID    int    `json:"clientId,omitempty"`
}

type withdrawPayload struct {
	Protocol  string `json:"protocol"`
	Address   string `json:"address"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message,omitempty"`
}

func (c *Client) newOrderPayload(req *exchange.OrderRequest, withPair bool) orderPayload {
	p := orderPayload{
		Action:      req.Action.String(),
		Amount:      req.Amount.String(),
		Timestamp:   c.now().UnixMilli(),
		Type:        req.Type.String(),
		TimeInForce: string(req.TimeInForce),
		ClientID:    req.ClientID,
	}
	if withPair {
		p.Pair = req.Pair
	}
	if req.Type != core.TypeMarket || !req.Price.IsZero() {
		p.Price = req.Price.String()
	}
	if req.Type == core.TypeStopLimit {
		p.StopPrice = req.StopPrice.String()
		p.Condition = req.Condition
	}
	return p
}

// GetAccountBalance lists the balance of every currency on the account.
func (c *Client) GetAccountBalance(ctx context.Context) ([]core.Balance, error) {
	var out envelope[[]core.Balance]
	if err := c.private(ctx, core.OpGetAccountBalance, core.OpGetAccountBalance.Request(), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateOrder places one order. The request is validated before it is signed.
func (c *Client) CreateOrder(ctx context.Context, req *exchange.OrderRequest) (*core.OrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result core.OrderResult
	payload := c.newOrderPayload(req, false)
	if err := c.private(ctx, core.OpCreateOrder, core.OpCreateOrder.Request(req.Pair), payload, &result); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("pair", req.Pair).
		Str("action", payload.Action).
		Str("type", payload.Type).
		Str("order_id", result.OrderID).
		Msg("order created")
	return &result, nil
}

// CreateBatchOrders places several orders in one signed call.
func (c *Client) CreateBatchOrders(ctx context.Context, reqs []exchange.OrderRequest) ([]core.OrderResult, error) {
	payload := make([]orderPayload, 0, len(reqs))
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return nil, err
		}
		payload = append(payload, c.newOrderPayload(&reqs[i], true))
	}

	var out envelope[[]core.OrderResult]
	if err := c.private(ctx, core.OpCreateBatchOrders, core.OpCreateBatchOrders.Request(), payload, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CancelOrder(ctx context.Context, pair, orderID string) (*core.OrderResult, error) {
	var result core.OrderResult
	if err := c.private(ctx, core.OpCancelOrder, core.OpCancelOrder.Request(pair, orderID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelAllOrders cancels every open order of pair, or of every pair when
// pair is empty.
func (c *Client) CancelAllOrders(ctx context.Context, pair string) (core.CancelledOrders, error) {
	if pair == "" {
		pair = allPairs
	}
	var out envelope[core.CancelledOrders]
	if err := c.private(ctx, core.OpCancelAllOrders, core.OpCancelAllOrders.Request(pair), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CancelBatchOrders cancels the listed order ids, grouped by pair.
func (c *Client) CancelBatchOrders(ctx context.Context, orders core.CancelledOrders) (core.CancelledOrders, error) {
	if orders == nil {
		orders = core.CancelledOrders{}
	}
	var out envelope[core.CancelledOrders]
	if err := c.private(ctx, core.OpCancelBatchOrders, core.OpCancelBatchOrders.Request(), orders, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetOrder(ctx context.Context, pair, orderID string) (*core.Order, error) {
	var order core.Order
	if err := c.private(ctx, core.OpGetOrder, core.OpGetOrder.Request(pair, orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAllOrders lists orders of pair. Defaults: every status kind, 100 orders,
// the exchange's default time window.
func (c *Client) GetAllOrders(ctx context.Context, pair string, opts ...exchange.Option) ([]core.Order, error) {
	options := exchange.ApplyOptions(opts...)
	kind := options.StatusKind
	if kind == "" {
		kind = core.StatusKindAll
	}

	req := core.OpGetAllOrders.Request(pair).
		SetQuery("ignoreTimeLimitEnable", options.IgnoreTimeLimit).
		SetQuery("statusKind", string(kind)).
		SetQuery("limit", options.LimitOr(defaultHistoryLimit))
	setTimeRange(req, options)
	if options.Status != nil {
		req.SetQuery("status", int(*options.Status))
	}
	if options.OrderID != "" {
		req.SetQuery("orderId", options.OrderID)
	}
	if options.ClientID != 0 {
		req.SetQuery("clientId", options.ClientID)
	}

	var out envelope[[]core.Order]
	if err := c.private(ctx, core.OpGetAllOrders, req, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetTradesList lists the account's fills on pair.
func (c *Client) GetTradesList(ctx context.Context, pair string, opts ...exchange.Option) ([]core.Fill, error) {
	options := exchange.ApplyOptions(opts...)

	req := core.OpGetTradesList.Request(pair).
		SetQuery("limit", options.LimitOr(defaultHistoryLimit))
	setTimeRange(req, options)
	if options.OrderID != "" {
		req.SetQuery("orderId", options.OrderID)
	}
	if options.TradeID != "" {
		req.SetQuery("tradeId", options.TradeID)
	}

	var out envelope[[]core.Fill]
	if err := c.private(ctx, core.OpGetTradesList, req, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetDepositHistory lists deposits of currency. Without WithStatuses only
// WAIT_PROCESS invoices are requested.
func (c *Client) GetDepositHistory(ctx context.Context, currency string, opts ...exchange.Option) ([]core.Invoice, error) {
	return c.invoices(ctx, core.OpGetDepositHistory, currency, opts)
}

// GetWithdrawHistory lists withdrawals of currency, filtered like GetDepositHistory.
func (c *Client) GetWithdrawHistory(ctx context.Context, currency string, opts ...exchange.Option) ([]core.Invoice, error) {
	return c.invoices(ctx, core.OpGetWithdrawHistory, currency, opts)
}

func (c *Client) invoices(ctx context.Context, op core.Operation, currency string, opts []exchange.Option) ([]core.Invoice, error) {
	options := exchange.ApplyOptions(opts...)

	req := op.Request(currency).SetQuery("limit", options.LimitOr(defaultHistoryLimit))
	if options.FromID != "" {
		req.SetQuery("id", options.FromID)
	}
	if filter := options.StatusesOr(core.InvoiceWaitProcess); len(filter) > 0 {
		statuses := make([]string, len(filter))
		for i, s := range filter {
			statuses[i] = string(s)
		}
		req.SetQuery("statuses", strings.Join(statuses, ","))
	}
	setTimeRange(req, options)

	var out envelope[[]core.Invoice]
	if err := c.private(ctx, op, req, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetWithdraw(ctx context.Context, currency, serial string) (*core.Invoice, error) {
	var out envelope[core.Invoice]
	if err := c.private(ctx, core.OpGetWithdraw, core.OpGetWithdraw.Request(currency, serial), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Withdraw sends funds to an address. An empty protocol means MAIN.
func (c *Client) Withdraw(ctx context.Context, currency string, req *exchange.WithdrawRequest) (*core.Invoice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	protocol := req.Protocol
	if protocol == "" {
		protocol = core.ProtocolMain
	}

	payload := withdrawPayload{
		Protocol:  string(protocol),
		Address:   req.Address,
		Amount:    req.Amount.String(),
		Timestamp: c.now().UnixMilli(),
		Message:   req.Message,
	}

	var out envelope[core.Invoice]
	if err := c.private(ctx, core.OpWithdraw, core.OpWithdraw.Request(currency), payload, &out); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("currency", currency).
		Str("protocol", payload.Protocol).
		Str("serial", out.Data.Serial).
		Msg("withdrawal requested")
	return &out.Data, nil
}

func setTimeRange(req *core.Request, o *exchange.Options) {
	if !o.StartTime.IsZero() {
		req.SetQuery("startTimestamp", o.StartTime.UnixMilli())
	}
	if !o.EndTime.IsZero() {
		req.SetQuery("endTimestamp", o.EndTime.UnixMilli())
	}
}
