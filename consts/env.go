package consts

// Environment variables read by config.Load.
const (
	EnvChain          = "POWERUP_CHAIN"
	EnvEndpoint       = "POWERUP_ENDPOINT"
	EnvPayer          = "POWERUP_PAYER"
	EnvReceiver       = "POWERUP_RECEIVER"
	EnvPermission     = "POWERUP_PERMISSION"
	EnvPrivateKey     = "POWERUP_PRIVATE_KEY"
	EnvMaxPayment     = "POWERUP_MAX_PAYMENT"
	EnvNetRatio       = "POWERUP_NET_RATIO"
	EnvCPURatio       = "POWERUP_CPU_RATIO"
	EnvDays           = "POWERUP_DAYS"
	EnvBlocksBehind   = "POWERUP_BLOCKS_BEHIND"
	EnvExpireSeconds  = "POWERUP_EXPIRE_SECONDS"
	EnvRequestTimeout = "POWERUP_TIMEOUT"
	EnvAllowEmpty     = "POWERUP_ALLOW_EMPTY"
	EnvDebug          = "POWERUP_DEBUG"
)
