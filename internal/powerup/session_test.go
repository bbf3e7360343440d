package powerup

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dyike/PowerupGo/models"
)

type stubReader struct {
	state *models.MarketState
	err   error
}

func (r *stubReader) ReadMarketState(ctx context.Context) (*models.MarketState, error) {
	return r.state, r.err
}

type stubPurchaser struct {
	calls int
	quote *models.PurchaseQuote
	err   error
}

func (p *stubPurchaser) Submit(ctx context.Context, quote *models.PurchaseQuote) (*models.TransactionResult, error) {
	p.calls++
	p.quote = quote
	if p.err != nil {
		return nil, p.err
	}
	return &models.TransactionResult{TransactionID: "abc123", Quote: quote}, nil
}

func market() *models.MarketState {
	res := func(min, max string) models.ResourceState {
		return models.ResourceState{
			MinPrice:            models.MustParseAmount(min),
			MaxPrice:            models.MustParseAmount(max),
			AdjustedUtilization: decimal.NewFromInt(5e15),
		}
	}
	return &models.MarketState{
		Net: res("0.0001 EOS", "0.0010 EOS"),
		CPU: res("0.0050 EOS", "0.0500 EOS"),
	}
}

func budget(amount string) models.PurchaseBudget {
	return models.PurchaseBudget{
		MaxPayment: models.MustParseAmount(amount),
		NetRatio:   0.01,
		CPURatio:   0.99,
		Days:       1,
	}
}

func TestExecute(t *testing.T) {
	purchaser := &stubPurchaser{}
	session := NewPowerupSession(&stubReader{state: market()}, purchaser, budget("1.0000 EOS"),
		WithExplorer(func(id string) string { return "https://explorer/tx/" + id }))

	result, err := session.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.TransactionID != "abc123" || result.ExplorerURL != "https://explorer/tx/abc123" {
		t.Fatalf("unexpected result %+v", result)
	}
	if purchaser.quote == nil || purchaser.quote.CPUFrac != 609230769230769230 {
		t.Fatalf("purchaser got wrong quote %+v", purchaser.quote)
	}
}

func TestExecuteStopsOnReaderError(t *testing.T) {
	purchaser := &stubPurchaser{}
	reader := &stubReader{err: models.ErrMarketStateEmpty}

	_, err := NewPowerupSession(reader, purchaser, budget("1.0000 EOS")).Execute(context.Background())
	if !errors.Is(err, models.ErrMarketStateEmpty) {
		t.Fatalf("expected ErrMarketStateEmpty, got %v", err)
	}
	if purchaser.calls != 0 {
		t.Fatalf("submitter must not run after a failed read")
	}
}

func TestExecuteStopsOnInvalidPrice(t *testing.T) {
	state := market()
	state.CPU.MinPrice = models.MustParseAmount("0.0000 EOS")
	state.CPU.MaxPrice = models.MustParseAmount("0.0000 EOS")
	purchaser := &stubPurchaser{}

	_, err := NewPowerupSession(&stubReader{state: state}, purchaser, budget("1.0000 EOS")).Execute(context.Background())
	if !errors.Is(err, models.ErrInvalidMarketPrice) {
		t.Fatalf("expected ErrInvalidMarketPrice, got %v", err)
	}
	if purchaser.calls != 0 {
		t.Fatalf("submitter must not run on a degenerate market")
	}
}

func TestExecuteZeroBudget(t *testing.T) {
	purchaser := &stubPurchaser{}
	_, err := NewPowerupSession(&stubReader{state: market()}, purchaser, budget("0.0000 EOS")).Execute(context.Background())
	if !errors.Is(err, models.ErrNothingToBuy) {
		t.Fatalf("expected ErrNothingToBuy, got %v", err)
	}
	if purchaser.calls != 0 {
		t.Fatalf("empty quote must not be submitted")
	}

	_, err = NewPowerupSession(&stubReader{state: market()}, purchaser, budget("0.0000 EOS"), WithAllowEmpty(true)).Execute(context.Background())
	if err != nil {
		t.Fatalf("allow-empty Execute: %v", err)
	}
	if purchaser.calls != 1 || !purchaser.quote.IsEmpty() {
		t.Fatalf("expected one empty submission, got %d", purchaser.calls)
	}
}

func TestExecuteConfirmation(t *testing.T) {
	purchaser := &stubPurchaser{}
	var seen *models.PurchaseQuote
	decline := WithConfirm(func(state *models.MarketState, quote *models.PurchaseQuote) (bool, error) {
		seen = quote
		return false, nil
	})

	_, err := NewPowerupSession(&stubReader{state: market()}, purchaser, budget("1.0000 EOS"), decline).Execute(context.Background())
	if !errors.Is(err, models.ErrPurchaseCancelled) {
		t.Fatalf("expected ErrPurchaseCancelled, got %v", err)
	}
	if seen == nil || purchaser.calls != 0 {
		t.Fatalf("confirm must see the quote and block submission")
	}
}

func TestExecutePropagatesRejection(t *testing.T) {
	rejected := &models.RejectionError{Message: "overdrawn balance", Payload: []byte(`{"code":500}`)}
	purchaser := &stubPurchaser{err: rejected}

	_, err := NewPowerupSession(&stubReader{state: market()}, purchaser, budget("1.0000 EOS")).Execute(context.Background())
	var rej *models.RejectionError
	if !errors.As(err, &rej) || rej != rejected {
		t.Fatalf("expected the rejection unchanged, got %v", err)
	}
}

func TestQuoteOnly(t *testing.T) {
	state, quote, err := NewPowerupSession(&stubReader{state: market()}, nil, budget("1.0000 EOS")).Quote(context.Background())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if state == nil || quote.NetFrac != 307692307692307692 {
		t.Fatalf("unexpected quote %+v", quote)
	}
}
