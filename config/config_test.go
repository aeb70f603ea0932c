package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Upstream.BaseURL != "http://localhost:5000" {
		t.Errorf("Upstream.BaseURL = %q, want http://localhost:5000", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 15s", cfg.Upstream.Timeout)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("Session.TTL = %v, want 12h", cfg.Session.TTL)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis.Addr = %q, want empty", cfg.Redis.Addr)
	}
	if cfg.Google.Enabled() {
		t.Error("Google sign-in should be disabled by default")
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LEARNIX_API_BASE_URL", "https://api.learnix.test/")
	t.Setenv("LEARNIX_API_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Upstream.BaseURL != "https://api.learnix.test" {
		t.Errorf("Upstream.BaseURL = %q, want trailing slash trimmed", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 5s", cfg.Upstream.Timeout)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want 30m", cfg.Session.TTL)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Redis.Addr = %q, want redis:6379", cfg.Redis.Addr)
	}
	if !cfg.Google.Enabled() {
		t.Error("Google sign-in should be enabled")
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{}
	cfg.Upstream.Timeout = -1
	cfg.Session.TTL = 0
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want default restored", cfg.HTTP.Addr)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("Upstream.Timeout = %v, want default restored", cfg.Upstream.Timeout)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("Session.TTL = %v, want default restored", cfg.Session.TTL)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("APP_ENV=development should enable dev mode")
	}
}
