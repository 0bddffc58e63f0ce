package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("port default: %d", c.Server.Port)
	}
	if c.Cache.SnapshotTTL != time.Hour {
		t.Fatalf("snapshot ttl default: %v", c.Cache.SnapshotTTL)
	}
	if len(c.Market.Primary) != 7 || len(c.Market.Secondary) != 5 {
		t.Fatalf("universe defaults: %v / %v", c.Market.Primary, c.Market.Secondary)
	}
	if c.Market.Renames["^TNX"] != "US_Treasury_10Y" {
		t.Fatalf("rename default: %v", c.Market.Renames)
	}
	if c.Market.InvertEURUSD == nil || !*c.Market.InvertEURUSD {
		t.Fatalf("invert default should be true")
	}
	if got := len(c.AllSymbols()); got != 15 {
		t.Fatalf("all symbols: %d", got)
	}
}

func TestLoadValidation(t *testing.T) {
	path := writeConfig(t, "environment: test\nmarket:\n  lookback_days: 1\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for lookback_days < 2")
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("MARKET_BASE_URL", "http://localhost:9999")
	t.Setenv("PRIMARY_SYMBOLS", "AAPL,NVDA")
	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Market.BaseURL != "http://localhost:9999" {
		t.Fatalf("base url override: %s", c.Market.BaseURL)
	}
	if len(c.Market.Primary) != 2 {
		t.Fatalf("symbol override: %v", c.Market.Primary)
	}
}
