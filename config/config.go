package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dyike/PowerupGo/consts"
	"github.com/dyike/PowerupGo/models"
)

type Config struct {
	Chain    string `json:"chain"`
	Endpoint string `json:"endpoint,omitempty"`

	Payer      string `json:"payer"`
	Receiver   string `json:"receiver,omitempty"`
	Permission string `json:"permission"`

	// Never written to disk.
	PrivateKey string `json:"-"`

	MaxPayment string  `json:"max_payment,omitempty"`
	NetRatio   float64 `json:"net_ratio"`
	CPURatio   float64 `json:"cpu_ratio"`
	Days       uint32  `json:"days"`

	// Validity window
	BlocksBehind  uint32 `json:"blocks_behind"`
	ExpireSeconds int    `json:"expire_seconds,omitempty"`

	RequestTimeoutSec int  `json:"request_timeout_sec"`
	AllowEmpty        bool `json:"allow_empty"`
	Debug             bool `json:"debug"`
}

func defaults() *Config {
	return &Config{
		Chain:             "eos",
		Permission:        consts.ActivePermission,
		NetRatio:          consts.DefaultNetRatio,
		CPURatio:          consts.DefaultCPURatio,
		Days:              consts.DefaultDays,
		BlocksBehind:      consts.DefaultBlocksBehind,
		RequestTimeoutSec: consts.DefaultRequestTimeout,
	}
}

// Load builds the configuration from defaults, an optional JSON file and the
// environment, in that order of precedence. A missing file is treated as empty
// so that `config init` can create it.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		if err := loadConfigFromFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// Load environment variables from .env file
	_ = godotenv.Load()
	cfg.loadFromEnv()
	cfg.ResolvePrivateKey()

	return cfg, nil
}

// ResolvePrivateKey picks the signing key for the current chain:
// POWERUP_PRIVATE_KEY, else the profile's own variable (EOS_PRIVATE_KEY,
// WAX_PRIVATE_KEY). Call it again whenever Chain changes.
func (c *Config) ResolvePrivateKey() {
	if val := os.Getenv(consts.EnvPrivateKey); val != "" {
		c.PrivateKey = val
		return
	}
	c.PrivateKey = ""
	if p, err := LookupProfile(c.Chain); err == nil {
		c.PrivateKey = os.Getenv(p.PrivateKeyEnv)
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv(consts.EnvChain); val != "" {
		c.Chain = val
	}
	if val := os.Getenv(consts.EnvEndpoint); val != "" {
		c.Endpoint = val
	}
	if val := os.Getenv(consts.EnvPayer); val != "" {
		c.Payer = val
	}
	if val := os.Getenv(consts.EnvReceiver); val != "" {
		c.Receiver = val
	}
	if val := os.Getenv(consts.EnvPermission); val != "" {
		c.Permission = val
	}
	if val := os.Getenv(consts.EnvMaxPayment); val != "" {
		c.MaxPayment = val
	}

	if val := os.Getenv(consts.EnvNetRatio); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.NetRatio = v
		}
	}
	if val := os.Getenv(consts.EnvCPURatio); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.CPURatio = v
		}
	}
	if val := os.Getenv(consts.EnvDays); val != "" {
		if v, err := strconv.ParseUint(val, 10, 32); err == nil {
			c.Days = uint32(v)
		}
	}
	if val := os.Getenv(consts.EnvBlocksBehind); val != "" {
		if v, err := strconv.ParseUint(val, 10, 32); err == nil {
			c.BlocksBehind = uint32(v)
		}
	}
	if val := os.Getenv(consts.EnvExpireSeconds); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.ExpireSeconds = v
		}
	}
	if val := os.Getenv(consts.EnvRequestTimeout); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.RequestTimeoutSec = v
		}
	}

	if val := os.Getenv(consts.EnvAllowEmpty); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.AllowEmpty = enabled
		}
	}
	if val := os.Getenv(consts.EnvDebug); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Profile returns the chain preset with the endpoint override applied.
func (c *Config) Profile() (ChainProfile, error) {
	p, err := LookupProfile(c.Chain)
	if err != nil {
		return ChainProfile{}, err
	}
	if c.Endpoint != "" {
		p.Endpoint = strings.TrimRight(c.Endpoint, "/")
	}
	if c.ExpireSeconds > 0 {
		p.ExpireSeconds = c.ExpireSeconds
	}
	return p, nil
}

// ReceiverAccount defaults to the payer.
func (c *Config) ReceiverAccount() string {
	if c.Receiver == "" {
		return c.Payer
	}
	return c.Receiver
}

func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return consts.DefaultRequestTimeout * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Budget parses the configured payment into the chain's unit and precision.
func (c *Config) Budget() (models.PurchaseBudget, error) {
	p, err := c.Profile()
	if err != nil {
		return models.PurchaseBudget{}, err
	}

	raw := c.MaxPayment
	if raw == "" {
		raw = p.DefaultMaxPayment
	}
	amount, err := models.ParseAmount(raw)
	if err != nil {
		return models.PurchaseBudget{}, err
	}
	if amount.Symbol != p.CurrencyUnit {
		return models.PurchaseBudget{}, fmt.Errorf("max payment %s must be in %s on %s", amount, p.CurrencyUnit, p.Name)
	}
	if amount.Value.IsNegative() {
		return models.PurchaseBudget{}, fmt.Errorf("max payment %s is negative", amount)
	}
	amount, err = amount.WithPrecision(p.DecimalPlaces)
	if err != nil {
		return models.PurchaseBudget{}, err
	}

	return models.PurchaseBudget{
		MaxPayment: amount,
		NetRatio:   c.NetRatio,
		CPURatio:   c.CPURatio,
		Days:       c.Days,
	}, nil
}

var accountNamePattern = regexp.MustCompile(`^[a-z1-5.]{1,12}$`)

func (c *Config) Validate() error {
	if _, err := c.Profile(); err != nil {
		return err
	}
	if c.Payer != "" && !accountNamePattern.MatchString(c.Payer) {
		return fmt.Errorf("invalid payer account %q", c.Payer)
	}
	if c.Receiver != "" && !accountNamePattern.MatchString(c.Receiver) {
		return fmt.Errorf("invalid receiver account %q", c.Receiver)
	}
	if c.Permission == "" {
		return fmt.Errorf("permission is required")
	}
	if c.NetRatio < 0 || c.CPURatio < 0 {
		return fmt.Errorf("ratios must be non-negative (net=%v cpu=%v)", c.NetRatio, c.CPURatio)
	}
	if math.Abs(c.NetRatio+c.CPURatio-1) > 1e-9 {
		return fmt.Errorf("net and cpu ratios must sum to 1 (net=%v cpu=%v)", c.NetRatio, c.CPURatio)
	}
	if c.Days == 0 {
		return fmt.Errorf("days must be at least 1")
	}
	if _, err := c.Budget(); err != nil {
		return err
	}
	return nil
}

// ValidateForPurchase additionally requires the fields needed to sign.
func (c *Config) ValidateForPurchase() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Payer == "" {
		return fmt.Errorf("payer account is required (set %s)", consts.EnvPayer)
	}
	if c.PrivateKey == "" {
		return fmt.Errorf("private key is required (set %s)", consts.EnvPrivateKey)
	}
	return nil
}
