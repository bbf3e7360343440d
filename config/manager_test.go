package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManagerCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := mgr.Get()
	cfg.Payer = "alice"
	cfg.Receiver = "bob"
	cfg.MaxPayment = "0.5000 EOS"

	if err := mgr.Update(cfg); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated := mgr.Get()
	if updated.Payer != "alice" || updated.Receiver != "bob" {
		t.Fatalf("expected payer/receiver alice/bob, got %s/%s", updated.Payer, updated.Receiver)
	}

	reopened, err := NewManager(WithConfigPath(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Get().MaxPayment != "0.5000 EOS" {
		t.Fatalf("expected persisted max payment, got %q", reopened.Get().MaxPayment)
	}
}

func TestManagerRejectsInvalidUpdate(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.NetRatio = 0.5
	cfg.CPURatio = 0.6
	if err := mgr.Update(cfg); err == nil {
		t.Fatalf("expected ratio validation error")
	}
	if mgr.Get().NetRatio != 0.01 {
		t.Fatalf("invalid update must not be applied")
	}
}

func TestManagerNeverWritesPrivateKey(t *testing.T) {
	dir := t.TempDir()
	initial := defaults()
	initial.Payer = "alice"
	initial.PrivateKey = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"

	mgr, err := NewManager(WithConfigDir(dir), WithInitialConfig(initial))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	data, err := os.ReadFile(mgr.Path())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(data), initial.PrivateKey) {
		t.Fatalf("private key leaked into %s", mgr.Path())
	}
}
