package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.DashboardLimit != 10 || cfg.NewsLimit != 5 || cfg.NewsDays != 7 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TICKERMIND_API_URL", "https://api.example.com")
	t.Setenv("TICKERMIND_TIMEOUT_SECONDS", "5")
	t.Setenv("TICKERMIND_DEFAULT_TICKER", "AAPL")
	t.Setenv("TICKERMIND_DASHBOARD_LIMIT", "25")
	t.Setenv("TICKERMIND_DEBUG", "true")

	cfg := DefaultConfig()
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.DefaultTicker != "AAPL" || cfg.DashboardLimit != 25 || !cfg.Debug {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestBadEnvValuesIgnored(t *testing.T) {
	t.Setenv("TICKERMIND_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("TICKERMIND_DASHBOARD_LIMIT", "-3")

	cfg := DefaultConfig()
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("bad timeout should keep default, got %v", cfg.RequestTimeout)
	}
	if cfg.DashboardLimit != 10 {
		t.Fatalf("bad limit should keep default, got %d", cfg.DashboardLimit)
	}
}
