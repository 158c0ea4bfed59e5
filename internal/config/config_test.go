package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DEV", "true")
	t.Setenv("API_BASE_URL", "http://backend:5000/api/")
	t.Setenv("SESSION_DRIVER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend:5000/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Session.Secret != devSessionSecret {
		t.Fatalf("expected dev secret fallback, got %q", cfg.Session.Secret)
	}
	if cfg.Session.Driver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", cfg.Session.Driver)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.Session.TTL)
	}
	if cfg.Server.HTTPAddress() != ":8080" {
		t.Fatalf("unexpected address %q", cfg.Server.HTTPAddress())
	}
}

func TestLoadRequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("DEV", "false")
	t.Setenv("SESSION_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without SESSION_SECRET in production")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("SESSION_DRIVER", "redis")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadCastsValues(t *testing.T) {
	t.Setenv("DEV", "1")
	t.Setenv("SESSION_DRIVER", "memory")
	t.Setenv("SESSION_TTL_HOURS", "6")
	t.Setenv("API_TIMEOUT", "3")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.TTL != 6*time.Hour {
		t.Fatalf("ttl = %s", cfg.Session.TTL)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Fatalf("timeout = %s", cfg.Backend.Timeout)
	}
	if cfg.Database.Port != 6543 {
		t.Fatalf("db port = %d", cfg.Database.Port)
	}
	if got := cfg.Database.DSN(); got != "host=localhost port=6543 user=travels password=travels dbname=travels_web sslmode=disable" {
		t.Fatalf("dsn = %q", got)
	}
}
