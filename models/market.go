package models

import "github.com/shopspring/decimal"

// ResourceState is the pricing state of one resource dimension (NET or CPU).
type ResourceState struct {
	MinPrice Amount `json:"min_price"`
	MaxPrice Amount `json:"max_price"`

	// AdjustedUtilization is a fixed-point fraction of the market, 1e16 == 100%.
	AdjustedUtilization decimal.Decimal `json:"adjusted_utilization"`

	// Informational fields, not used by the pricing engine.
	Utilization decimal.Decimal `json:"utilization"`
	Weight      decimal.Decimal `json:"weight"`
	Exponent    decimal.Decimal `json:"exponent"`
	DecaySecs   uint32          `json:"decay_secs"`
}

// MarketState is a snapshot of the powerup market singleton row.
type MarketState struct {
	Net ResourceState `json:"net"`
	CPU ResourceState `json:"cpu"`

	PowerupDays   uint32 `json:"powerup_days"`
	MinPowerupFee Amount `json:"min_powerup_fee"`
}
