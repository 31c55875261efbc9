package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BIGSTOCK_ACCOUNT_ID", " 123456 ")
	t.Setenv("BIGSTOCK_SECRET_KEY", "secret")
	t.Setenv("BIGSTOCK_MODE", "TEST")
	t.Setenv("BIGSTOCK_TIMEOUT_MS", "1500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccountID != "123456" {
		t.Fatalf("unexpected account id %q", cfg.AccountID)
	}
	if cfg.Mode != "test" {
		t.Fatalf("unexpected mode %q", cfg.Mode)
	}
	if cfg.Timeout != 1500*time.Millisecond {
		t.Fatalf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.StorageType != "bbolt" || cfg.StorageTTL != 30*24*time.Hour {
		t.Fatalf("unexpected storage defaults %q %v", cfg.StorageType, cfg.StorageTTL)
	}
	if strings.Contains(cfg.String(), "secret") {
		t.Fatalf("String leaks the secret: %s", cfg.String())
	}
	if _, ok := cfg.Summary()["secret_key"]; ok {
		t.Fatalf("Summary leaks the secret")
	}
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("BIGSTOCK_ACCOUNT_ID", "")
	t.Setenv("BIGSTOCK_SECRET_KEY", "secret")

	if _, err := Load(); err == nil {
		t.Fatalf("expected missing account id error")
	}

	t.Setenv("BIGSTOCK_ACCOUNT_ID", "1")
	t.Setenv("BIGSTOCK_SECRET_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected missing secret key error")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("BIGSTOCK_ACCOUNT_ID", "1")
	t.Setenv("BIGSTOCK_SECRET_KEY", "secret")
	t.Setenv("BIGSTOCK_TIMEOUT_MS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected timeout validation error")
	}
}
