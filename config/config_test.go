package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dyike/PowerupGo/consts"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		consts.EnvChain, consts.EnvEndpoint, consts.EnvPayer, consts.EnvReceiver,
		consts.EnvPermission, consts.EnvPrivateKey, consts.EnvMaxPayment, consts.EnvNetRatio,
		consts.EnvCPURatio, consts.EnvDays, consts.EnvBlocksBehind, consts.EnvExpireSeconds,
		consts.EnvRequestTimeout, consts.EnvAllowEmpty, consts.EnvDebug,
		"EOS_PRIVATE_KEY", "WAX_PRIVATE_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(consts.EnvChain, "wax")
	t.Setenv(consts.EnvPayer, "waxpayer1234")
	t.Setenv(consts.EnvNetRatio, "0.2")
	t.Setenv(consts.EnvCPURatio, "0.8")
	t.Setenv(consts.EnvDays, "2")
	t.Setenv(consts.EnvRequestTimeout, "5")
	t.Setenv("WAX_PRIVATE_KEY", "wif-from-legacy-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chain != "wax" || cfg.Payer != "waxpayer1234" {
		t.Fatalf("unexpected chain/payer %s/%s", cfg.Chain, cfg.Payer)
	}
	if cfg.NetRatio != 0.2 || cfg.CPURatio != 0.8 || cfg.Days != 2 {
		t.Fatalf("unexpected ratios/days %v/%v/%d", cfg.NetRatio, cfg.CPURatio, cfg.Days)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.RequestTimeout())
	}
	if cfg.PrivateKey != "wif-from-legacy-env" {
		t.Fatalf("expected legacy per-chain key fallback, got %q", cfg.PrivateKey)
	}
	if cfg.ReceiverAccount() != "waxpayer1234" {
		t.Fatalf("receiver should default to payer, got %q", cfg.ReceiverAccount())
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "powerup.json")
	if err := os.WriteFile(path, []byte(`{"chain":"eos","payer":"filepayer","max_payment":"0.2000 EOS","net_ratio":0.01,"cpu_ratio":0.99,"days":1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(consts.EnvPayer, "envpayer")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Payer != "envpayer" {
		t.Fatalf("env must win over file, got %q", cfg.Payer)
	}
	if cfg.MaxPayment != "0.2000 EOS" {
		t.Fatalf("file value lost, got %q", cfg.MaxPayment)
	}
	if cfg.BlocksBehind != consts.DefaultBlocksBehind {
		t.Fatalf("default lost, got %d", cfg.BlocksBehind)
	}
}

func TestBudgetUsesProfileDefaults(t *testing.T) {
	cfg := defaults()
	cfg.Chain = "wax"

	budget, err := cfg.Budget()
	if err != nil {
		t.Fatalf("Budget: %v", err)
	}
	if budget.MaxPayment.String() != "1.00000000 WAX" {
		t.Fatalf("unexpected default payment %s", budget.MaxPayment)
	}
	if budget.NetRatio != 0.01 || budget.CPURatio != 0.99 || budget.Days != 1 {
		t.Fatalf("unexpected budget %+v", budget)
	}
}

func TestBudgetNormalizesPrecision(t *testing.T) {
	cfg := defaults()
	cfg.MaxPayment = "1 EOS"

	budget, err := cfg.Budget()
	if err != nil {
		t.Fatalf("Budget: %v", err)
	}
	if budget.MaxPayment.String() != "1.0000 EOS" {
		t.Fatalf("got %s", budget.MaxPayment)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"unknown chain", func(c *Config) { c.Chain = "telos" }, false},
		{"bad payer", func(c *Config) { c.Payer = "Not_An_Account" }, false},
		{"ratios off", func(c *Config) { c.NetRatio = 0.5 }, false},
		{"negative ratio", func(c *Config) { c.NetRatio = -0.01; c.CPURatio = 1.01 }, false},
		{"zero days", func(c *Config) { c.Days = 0 }, false},
		{"wrong unit", func(c *Config) { c.MaxPayment = "0.1000 WAX" }, false},
		{"too precise", func(c *Config) { c.MaxPayment = "0.00001 EOS" }, false},
		{"negative payment", func(c *Config) { c.MaxPayment = "-1.0000 EOS" }, false},
		{"zero payment", func(c *Config) { c.MaxPayment = "0.0000 EOS" }, true},
	}

	for _, tc := range cases {
		cfg := defaults()
		tc.mutate(cfg)
		err := cfg.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestValidateForPurchaseRequiresCredentials(t *testing.T) {
	cfg := defaults()
	if err := cfg.ValidateForPurchase(); err == nil {
		t.Fatalf("expected missing payer error")
	}
	cfg.Payer = "alice"
	if err := cfg.ValidateForPurchase(); err == nil {
		t.Fatalf("expected missing key error")
	}
	cfg.PrivateKey = "wif"
	if err := cfg.ValidateForPurchase(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestProfileOverrides(t *testing.T) {
	cfg := defaults()
	cfg.Endpoint = "http://127.0.0.1:8888/"
	cfg.ExpireSeconds = 45

	p, err := cfg.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Endpoint != "http://127.0.0.1:8888" || p.ExpireSeconds != 45 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if got := p.ExplorerURL("abc"); got != "https://coffe.bloks.io/transaction/abc" {
		t.Fatalf("ExplorerURL=%s", got)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chain != "eos" || cfg.Days != consts.DefaultDays {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestResolvePrivateKeyFollowsChain(t *testing.T) {
	clearEnv(t)
	t.Setenv("EOS_PRIVATE_KEY", "eos-key")
	t.Setenv("WAX_PRIVATE_KEY", "wax-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PrivateKey != "eos-key" {
		t.Fatalf("default chain should use EOS_PRIVATE_KEY, got %q", cfg.PrivateKey)
	}

	cfg.Chain = "wax"
	cfg.ResolvePrivateKey()
	if cfg.PrivateKey != "wax-key" {
		t.Fatalf("wax should use WAX_PRIVATE_KEY, got %q", cfg.PrivateKey)
	}

	t.Setenv("WAX_PRIVATE_KEY", "")
	cfg.ResolvePrivateKey()
	if cfg.PrivateKey != "" {
		t.Fatalf("key from the previous chain must not carry over, got %q", cfg.PrivateKey)
	}

	t.Setenv(consts.EnvPrivateKey, "shared-key")
	cfg.ResolvePrivateKey()
	if cfg.PrivateKey != "shared-key" {
		t.Fatalf("%s must win, got %q", consts.EnvPrivateKey, cfg.PrivateKey)
	}
}
