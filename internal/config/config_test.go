package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("WHATSAPP_INSTANCE", "")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("WHATSAPP_TIMEOUT", "")

	cfg := New()

	if cfg.WhatsApp.BaseURL != "https://app.hypersender.com/api/whatsapp/v1" {
		t.Fatalf("unexpected base url: %q", cfg.WhatsApp.BaseURL)
	}
	if cfg.WhatsApp.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", cfg.WhatsApp.Timeout)
	}
	if !cfg.Redis.Enabled {
		t.Fatalf("expected redis to be enabled by default")
	}
	if err := cfg.ValidateWhatsApp(); err == nil {
		t.Fatalf("expected validation error without instance and token")
	}
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("WHATSAPP_INSTANCE", "inst-42")
	t.Setenv("WHATSAPP_TOKEN", "secret")
	t.Setenv("WHATSAPP_TIMEOUT", "3s")
	t.Setenv("REDIS_ENABLED", "off")
	t.Setenv("OUTBOX_MAX_WORKERS", "not-a-number")

	cfg := New()

	if cfg.WhatsApp.Instance != "inst-42" || cfg.WhatsApp.Token != "secret" {
		t.Fatalf("whatsapp settings not read: %+v", cfg.WhatsApp)
	}
	if cfg.WhatsApp.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.WhatsApp.Timeout)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("expected redis to be disabled")
	}
	if cfg.Worker.MaxWorkers != 4 {
		t.Fatalf("expected invalid int to fall back to 4, got %d", cfg.Worker.MaxWorkers)
	}
	if err := cfg.ValidateWhatsApp(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{}
	cfg.DB.Host = "localhost"
	cfg.DB.Port = 5433
	cfg.DB.User = "u"
	cfg.DB.Password = "p"
	cfg.DB.Name = "n"
	cfg.DB.SSLMode = "disable"

	want := "host=localhost port=5433 user=u password=p dbname=n sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("dsn mismatch:\n got %q\nwant %q", got, want)
	}
}
