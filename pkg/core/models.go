package core

import (
	"github.com/cockroachdb/apd/v3"
)

// Currency describes deposit and withdrawal provisioning of one currency.
type Currency struct {
	Currency            string      `json:"currency"`
	WithdrawFee         apd.Decimal `json:"withdrawFee"`
	MinWithdraw         apd.Decimal `json:"minWithdraw"`
	MaxWithdraw         apd.Decimal `json:"maxWithdraw"`
	MaxDailyWithdraw    apd.Decimal `json:"maxDailyWithdraw"`
	Withdraw            bool        `json:"withdraw"`
	Deposit             bool        `json:"deposit"`
	DepositConfirmation string      `json:"depositConfirmation"`
}

// TradingPair describes the precision and limits of one pair.
type TradingPair struct {
	Pair                     string      `json:"pair"`
	Base                     string      `json:"base"`
	Quote                    string      `json:"quote"`
	BasePrecision            string      `json:"basePrecision"`
	QuotePrecision           string      `json:"quotePrecision"`
	MinLimitBaseAmount       apd.Decimal `json:"minLimitBaseAmount"`
	MaxLimitBaseAmount       apd.Decimal `json:"maxLimitBaseAmount"`
	MinMarketBuyQuoteAmount  apd.Decimal `json:"minMarketBuyQuoteAmount"`
	OrderOpenLimit           string      `json:"orderOpenLimit"`
	Maintain                 bool        `json:"maintain"`
	OrderBookQuotePrecision  string      `json:"orderBookQuotePrecision"`
	OrderBookQuoteScaleLevel string      `json:"orderBookQuoteScaleLevel"`
	AmountPrecision          string      `json:"amountPrecision"`
}

// PriceLevel is one aggregated order book level.
type PriceLevel struct {
	Price  apd.Decimal `json:"price"`
	Amount apd.Decimal `json:"amount"`
	Count  int         `json:"count"`
	Total  apd.Decimal `json:"total"`
}

// OrderBook holds both sides of a pair's book, best price first.
type OrderBook struct {
	Asks []PriceLevel `json:"asks"`
	Bids []PriceLevel `json:"bids"`
}

// Ticker is the 24 hour summary of a pair.
type Ticker struct {
	Pair            string      `json:"pair"`
	LastPrice       apd.Decimal `json:"lastPrice"`
	IsBuyer         bool        `json:"isBuyer"`
	PriceChange24hr apd.Decimal `json:"priceChange24hr"`
	Volume24hr      apd.Decimal `json:"volume24hr"`
	High24hr        apd.Decimal `json:"high24hr"`
	Low24hr         apd.Decimal `json:"low24hr"`
}

// Trade is one public trade. Timestamp is in Unix seconds.
type Trade struct {
	Timestamp int64       `json:"timestamp"`
	Price     apd.Decimal `json:"price"`
	Amount    apd.Decimal `json:"amount"`
	IsBuyer   bool        `json:"isBuyer"`
}

// Candlestick is one OHLCV bar. Timestamp is in Unix milliseconds.
type Candlestick struct {
	Timestamp int64       `json:"timestamp"`
	Open      apd.Decimal `json:"open"`
	High      apd.Decimal `json:"high"`
	Low       apd.Decimal `json:"low"`
	Close     apd.Decimal `json:"close"`
	Volume    apd.Decimal `json:"volume"`
}

// Balance is the holding of one currency.
type Balance struct {
	Currency  string      `json:"currency"`
	Amount    apd.Decimal `json:"amount"`
	Available apd.Decimal `json:"available"`
	Stake     apd.Decimal `json:"stake"`
	Tradable  bool        `json:"tradable"`
}

// OrderResult acknowledges an order that was created or cancelled.
type OrderResult struct {
	OrderID     string      `json:"orderId"`
	Timestamp   int64       `json:"timestamp"`
	Action      OrderAction `json:"action"`
	Amount      apd.Decimal `json:"amount"`
	Price       apd.Decimal `json:"price"`
	TimeInForce TimeInForce `json:"timeInForce,omitempty"`
	ClientID    int         `json:"clientId,omitempty"`
}

// Order is the full state of an order.
type Order struct {
	ID                string      `json:"id"`
	Pair              string      `json:"pair"`
	Price             apd.Decimal `json:"price"`
	AvgExecutionPrice apd.Decimal `json:"avgExecutionPrice"`
	Action            OrderAction `json:"action"`
	Type              OrderType   `json:"type"`
	CreatedTimestamp  int64       `json:"createdTimestamp"`
	UpdatedTimestamp  int64       `json:"updatedTimestamp"`
	Status            OrderStatus `json:"status"`
	OriginalAmount    apd.Decimal `json:"originalAmount"`
	RemainingAmount   apd.Decimal `json:"remainingAmount"`
	ExecutedAmount    apd.Decimal `json:"executedAmount"`
	Fee               apd.Decimal `json:"fee"`
	FeeSymbol         string      `json:"feeSymbol"`
	BitoFee           apd.Decimal `json:"bitoFee"`
	Total             apd.Decimal `json:"total"`
	Seq               string      `json:"seq"`
	StopPrice         apd.Decimal `json:"stopPrice"`
	Condition         string      `json:"condition"`
	TimeInForce       TimeInForce `json:"timeInForce"`
	ClientID          int         `json:"clientId"`
}

// Fill is one execution of the account's orders.
type Fill struct {
	TradeID          string      `json:"tradeId"`
	OrderID          string      `json:"orderId"`
	Price            apd.Decimal `json:"price"`
	Action           OrderAction `json:"action"`
	BaseAmount       apd.Decimal `json:"baseAmount"`
	QuoteAmount      apd.Decimal `json:"quoteAmount"`
	Fee              apd.Decimal `json:"fee"`
	FeeSymbol        string      `json:"feeSymbol"`
	IsTaker          bool        `json:"isTaker"`
	Timestamp        int64       `json:"timestamp"`
	CreatedTimestamp int64       `json:"createdTimestamp"`
}

// Invoice is a deposit or withdrawal record.
type Invoice struct {
	ID        string      `json:"id"`
	Serial    string      `json:"serial"`
	Currency  string      `json:"currency,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Protocol  string      `json:"protocol"`
	Address   string      `json:"address"`
	Amount    apd.Decimal `json:"amount"`
	Fee       apd.Decimal `json:"fee"`
	Total     apd.Decimal `json:"total"`
	Status    string      `json:"status"`
	TxID      string      `json:"txid,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// CancelledOrders maps each pair to the ids of its cancelled orders.
type CancelledOrders map[string][]string
