package consts

const (
	// System contract hosting the resource market
	SystemContract = "eosio"
	// Singleton table with the aggregate market state
	PowerupStateTable = "powup.state"
	PowerupAction     = "powerup"
	ActivePermission  = "active"
)

const (
	// FracDecimals is the fixed-point exponent of fractions and utilization (1e16 == 100%).
	FracDecimals = 16

	DefaultBlocksBehind   = 3
	DefaultDays           = 1
	DefaultNetRatio       = 0.01
	DefaultCPURatio       = 0.99
	DefaultRequestTimeout = 30
)
