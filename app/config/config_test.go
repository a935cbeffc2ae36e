package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.test")
	t.Setenv("BACKEND_HTTP_TIMEOUT", "")
	t.Setenv("BACKEND_ANALYZE_TIMEOUT", "")
	t.Setenv("LISTEN_ADDR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend.test" {
		t.Fatalf("BaseURL = %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.HTTPTimeout != 15*time.Second || cfg.Backend.AnalyzeTimeout != 90*time.Second {
		t.Fatalf("timeout defaults wrong: %+v", cfg.Backend)
	}
	if cfg.Addr != "0.0.0.0:8080" {
		t.Fatalf("Addr default = %s", cfg.Addr)
	}
}

func TestLoadConfigRequiresBaseURL(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without BACKEND_BASE_URL")
	}
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.test")
	t.Setenv("BACKEND_HTTP_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for non-numeric timeout")
	}
}
