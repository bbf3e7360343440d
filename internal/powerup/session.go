package powerup

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dyike/PowerupGo/internal/pricing"
	"github.com/dyike/PowerupGo/models"
)

// MarketReader provides the current market snapshot.
type MarketReader interface {
	ReadMarketState(ctx context.Context) (*models.MarketState, error)
}

// Purchaser submits a quote as a signed transaction.
type Purchaser interface {
	Submit(ctx context.Context, quote *models.PurchaseQuote) (*models.TransactionResult, error)
}

// ConfirmFunc is asked before anything is broadcast. Returning false cancels
// the purchase.
type ConfirmFunc func(state *models.MarketState, quote *models.PurchaseQuote) (bool, error)

// PowerupSession runs one purchase: read state, quote, submit.
type PowerupSession struct {
	reader     MarketReader
	purchaser  Purchaser
	budget     models.PurchaseBudget
	confirm    ConfirmFunc
	explorer   func(txID string) string
	allowEmpty bool
	log        *logrus.Entry
}

type Option func(*PowerupSession)

// WithConfirm installs a confirmation step between quoting and submission.
func WithConfirm(fn ConfirmFunc) Option {
	return func(s *PowerupSession) {
		s.confirm = fn
	}
}

// WithExplorer sets how transaction ids are turned into explorer links.
func WithExplorer(fn func(txID string) string) Option {
	return func(s *PowerupSession) {
		s.explorer = fn
	}
}

// WithAllowEmpty submits quotes that buy nothing instead of failing with
// ErrNothingToBuy.
func WithAllowEmpty(allow bool) Option {
	return func(s *PowerupSession) {
		s.allowEmpty = allow
	}
}

// NewPowerupSession creates a session. purchaser may be nil for quote-only use.
func NewPowerupSession(reader MarketReader, purchaser Purchaser, budget models.PurchaseBudget, opts ...Option) *PowerupSession {
	s := &PowerupSession{
		reader:    reader,
		purchaser: purchaser,
		budget:    budget,
		log: logrus.WithFields(logrus.Fields{
			"component":   "session",
			"max_payment": budget.MaxPayment.String(),
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote reads the market and prices the budget without submitting anything.
func (s *PowerupSession) Quote(ctx context.Context) (*models.MarketState, *models.PurchaseQuote, error) {
	state, err := s.reader.ReadMarketState(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read market state: %w", err)
	}

	quote, err := pricing.Quote(state, s.budget)
	if err != nil {
		return state, nil, fmt.Errorf("price budget: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"net_frac":    quote.NetFrac,
		"cpu_frac":    quote.CPUFrac,
		"actual_cost": quote.ActualCost.String(),
	}).Debug("quote computed")

	return state, quote, nil
}

// Execute runs the whole purchase. Any failure aborts the run; nothing is
// retried.
func (s *PowerupSession) Execute(ctx context.Context) (*models.TransactionResult, error) {
	if s.purchaser == nil {
		return nil, fmt.Errorf("%w: session has no purchaser", models.ErrSigningFailed)
	}

	state, quote, err := s.Quote(ctx)
	if err != nil {
		return nil, err
	}

	if quote.IsEmpty() && !s.allowEmpty {
		return nil, fmt.Errorf("%w: %s buys zero NET and CPU", models.ErrNothingToBuy, s.budget.MaxPayment)
	}

	if s.confirm != nil {
		ok, err := s.confirm(state, quote)
		if err != nil {
			return nil, fmt.Errorf("confirm purchase: %w", err)
		}
		if !ok {
			return nil, models.ErrPurchaseCancelled
		}
	}

	result, err := s.purchaser.Submit(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("submit purchase: %w", err)
	}

	if s.explorer != nil {
		result.ExplorerURL = s.explorer(result.TransactionID)
	}
	return result, nil
}
