package models

import "github.com/shopspring/decimal"

// PurchaseBudget is what the caller is willing to spend and how to split it.
type PurchaseBudget struct {
	MaxPayment Amount  `json:"max_payment"`
	NetRatio   float64 `json:"net_ratio"`
	CPURatio   float64 `json:"cpu_ratio"`
	Days       uint32  `json:"days"`
}

// PurchaseQuote is the engine output consumed by the submitter.
type PurchaseQuote struct {
	NetFrac    int64  `json:"net_frac"`
	CPUFrac    int64  `json:"cpu_frac"`
	Days       uint32 `json:"days"`
	MaxPayment Amount `json:"max_payment"`

	NetPrice   decimal.Decimal `json:"net_price"`
	CPUPrice   decimal.Decimal `json:"cpu_price"`
	NetCost    decimal.Decimal `json:"net_cost"`
	CPUCost    decimal.Decimal `json:"cpu_cost"`
	ActualCost decimal.Decimal `json:"actual_cost"`
}

// IsEmpty reports whether the quote buys nothing in either dimension.
func (q *PurchaseQuote) IsEmpty() bool {
	return q.NetFrac == 0 && q.CPUFrac == 0
}

// ActualCostAmount renders the cost in the budget's unit. Extra decimals are
// truncated so the displayed value never exceeds the real one.
func (q *PurchaseQuote) ActualCostAmount() Amount {
	return Amount{
		Value:     q.ActualCost.Truncate(q.MaxPayment.Precision),
		Symbol:    q.MaxPayment.Symbol,
		Precision: q.MaxPayment.Precision,
	}
}

type TransactionResult struct {
	TransactionID string         `json:"transaction_id"`
	ExplorerURL   string         `json:"explorer_url"`
	Quote         *PurchaseQuote `json:"quote"`
}
