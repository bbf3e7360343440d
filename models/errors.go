package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// Market errors
	ErrMarketUnavailable  = errors.New("market state unavailable")
	ErrMarketStateEmpty   = errors.New("market state table is empty")
	ErrInvalidMarketPrice = errors.New("invalid market price")

	// Budget errors
	ErrInvalidBudget  = errors.New("invalid purchase budget")
	ErrBudgetTooLarge = errors.New("budget too large for the market")
	ErrNothingToBuy   = errors.New("nothing to buy")

	// Submission errors
	ErrSigningFailed       = errors.New("signing failed")
	ErrChainUnavailable    = errors.New("chain unavailable")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrPurchaseCancelled   = errors.New("purchase cancelled")
)

// RejectionError is returned when the node refuses a transaction. Payload is
// the node's error body as received.
type RejectionError struct {
	Message string
	Payload json.RawMessage
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return ErrTransactionRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrTransactionRejected, e.Message)
}

func (e *RejectionError) Unwrap() error {
	return ErrTransactionRejected
}

// ErrorKind groups errors by the operator response they need.
type ErrorKind string

const (
	KindMarketUnreadable ErrorKind = "market_unreadable"
	KindMarketInvalid    ErrorKind = "market_invalid"
	KindInvalidBudget    ErrorKind = "invalid_budget"
	KindNothingToBuy     ErrorKind = "nothing_to_buy"
	KindCredentials      ErrorKind = "credentials"
	KindRejected         ErrorKind = "rejected"
	KindChainUnreachable ErrorKind = "chain_unreachable"
	KindCancelled        ErrorKind = "cancelled"
	KindUnknown          ErrorKind = "unknown"
)

// Classify maps an error to its kind and a short hint for the operator.
func Classify(err error) (ErrorKind, string) {
	switch {
	case err == nil:
		return "", ""
	case errors.Is(err, ErrMarketStateEmpty):
		return KindMarketInvalid, "the powerup market is not initialized on this chain"
	case errors.Is(err, ErrMarketUnavailable):
		return KindMarketUnreadable, "retry later or switch endpoint"
	case errors.Is(err, ErrInvalidMarketPrice):
		return KindMarketInvalid, "market reports a degenerate price, check the chain profile"
	case errors.Is(err, ErrBudgetTooLarge):
		return KindInvalidBudget, "budget or ratio too large for the market, lower the max payment"
	case errors.Is(err, ErrInvalidBudget):
		return KindInvalidBudget, "check max payment, ratios and days"
	case errors.Is(err, ErrNothingToBuy):
		return KindNothingToBuy, "increase the budget or adjust the ratios"
	case errors.Is(err, ErrSigningFailed):
		return KindCredentials, "fix the private key or permission"
	case errors.Is(err, ErrTransactionRejected):
		return KindRejected, "inspect the rejection payload (balance, authorization, expiry)"
	case errors.Is(err, ErrChainUnavailable):
		return KindChainUnreachable, "retry later or switch endpoint"
	case errors.Is(err, ErrPurchaseCancelled):
		return KindCancelled, "nothing was submitted"
	default:
		return KindUnknown, ""
	}
}
