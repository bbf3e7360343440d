// Package pricing turns a market snapshot and a budget into a powerup quote.
//
// Prices follow a quadratic bonding curve between each resource's min and max
// price. Fractions are fixed-point integers scaled by 1e16 and are always
// floored, so the cost of a quote never exceeds the budget share it came from.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/dyike/PowerupGo/consts"
	"github.com/dyike/PowerupGo/models"
)

var (
	fracScale = decimal.New(1, consts.FracDecimals)
	maxFrac   = decimal.NewFromInt(math.MaxInt64)
)

// UnitPrice is the current price of 100% of a resource for one day:
// min + (max - min) * u^2 with u = adjusted_utilization / 1e16.
func UnitPrice(r models.ResourceState) (decimal.Decimal, error) {
	if r.AdjustedUtilization.IsNegative() || r.AdjustedUtilization.GreaterThan(fracScale) {
		return decimal.Zero, fmt.Errorf("%w: adjusted utilization %s outside [0, 1e16]", models.ErrInvalidMarketPrice, r.AdjustedUtilization)
	}
	if r.MinPrice.Value.GreaterThan(r.MaxPrice.Value) {
		return decimal.Zero, fmt.Errorf("%w: min price %s above max price %s", models.ErrInvalidMarketPrice, r.MinPrice, r.MaxPrice)
	}

	u := r.AdjustedUtilization.Shift(-consts.FracDecimals)
	price := r.MinPrice.Value.Add(r.MaxPrice.Value.Sub(r.MinPrice.Value).Mul(u.Mul(u)))
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price is %s", models.ErrInvalidMarketPrice, price)
	}
	return price, nil
}

// Quote computes the fractions a budget buys on the given market.
func Quote(state *models.MarketState, budget models.PurchaseBudget) (*models.PurchaseQuote, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: no market state", models.ErrInvalidMarketPrice)
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	netPrice, err := UnitPrice(state.Net)
	if err != nil {
		return nil, fmt.Errorf("net: %w", err)
	}
	cpuPrice, err := UnitPrice(state.CPU)
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}

	days := decimal.NewFromInt(int64(budget.Days))
	total := budget.MaxPayment.Value

	netFrac, netCost, err := allocate(total.Mul(decimal.NewFromFloat(budget.NetRatio)), netPrice, days)
	if err != nil {
		return nil, fmt.Errorf("net: %w", err)
	}
	cpuFrac, cpuCost, err := allocate(total.Mul(decimal.NewFromFloat(budget.CPURatio)), cpuPrice, days)
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}

	return &models.PurchaseQuote{
		NetFrac:    netFrac,
		CPUFrac:    cpuFrac,
		Days:       budget.Days,
		MaxPayment: budget.MaxPayment,
		NetPrice:   netPrice,
		CPUPrice:   cpuPrice,
		NetCost:    netCost,
		CPUCost:    cpuCost,
		ActualCost: netCost.Add(cpuCost),
	}, nil
}

// allocate returns floor(share * 1e16 / (price * days)) and the cost of that
// fraction. QuoRem yields the exact integer quotient; no rounding step can
// push the fraction above the share.
func allocate(share, price, days decimal.Decimal) (int64, decimal.Decimal, error) {
	frac, _ := share.Mul(fracScale).QuoRem(price.Mul(days), 0)
	if frac.GreaterThan(maxFrac) {
		return 0, decimal.Zero, fmt.Errorf("%w: %w: fraction %s overflows int64", models.ErrInvalidBudget, models.ErrBudgetTooLarge, frac)
	}

	cost := frac.Mul(price).Mul(days).Shift(-consts.FracDecimals)
	return frac.IntPart(), cost, nil
}

func validateBudget(b models.PurchaseBudget) error {
	switch {
	case b.MaxPayment.Value.IsNegative():
		return fmt.Errorf("%w: max payment %s is negative", models.ErrInvalidBudget, b.MaxPayment)
	case b.Days == 0:
		return fmt.Errorf("%w: days must be at least 1", models.ErrInvalidBudget)
	case b.NetRatio < 0 || b.CPURatio < 0:
		return fmt.Errorf("%w: negative ratio", models.ErrInvalidBudget)
	case math.Abs(b.NetRatio+b.CPURatio-1) > 1e-9:
		return fmt.Errorf("%w: ratios sum to %v", models.ErrInvalidBudget, b.NetRatio+b.CPURatio)
	}
	return nil
}
