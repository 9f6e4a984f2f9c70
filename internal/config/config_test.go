package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AuthHeader != "Ocp-Apim-Subscription-Key" {
		t.Fatalf("unexpected auth header %q", cfg.AuthHeader)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected http timeout %v", cfg.HTTPTimeout)
	}
	if cfg.CredentialsStore != "file" || cfg.CacheType != "none" {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
	if cfg.BatchConcurrency != 4 {
		t.Fatalf("unexpected batch concurrency %d", cfg.BatchConcurrency)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_ROOT", "https://eastus.example.com/face/v1.0/")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("BATCH_CONCURRENCY", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIRoot != "https://eastus.example.com/face/v1.0" {
		t.Fatalf("api root not trimmed: %q", cfg.APIRoot)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected cache ttl %v", cfg.CacheTTL)
	}
	if cfg.BatchConcurrency != 2 {
		t.Fatalf("unexpected batch concurrency %d", cfg.BatchConcurrency)
	}
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero http timeout")
	}
}
