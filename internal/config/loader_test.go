package config

import (
	"os"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"COINOMAD_HTTP_PORT",
			"COINOMAD_API_TIMEOUT",
			"COINOMAD_API_SLOW_TIMEOUT",
			"COINOMAD_SQLITE_DSN",
			"COINOMAD_SESSION_TTL",
			"COINOMAD_SECURE_COOKIES",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		const secret = "super-secret"
		t.Setenv("COINOMAD_SESSION_SECRET", secret)
		t.Setenv("COINOMAD_API_BASE_URL", "http://localhost:3000/v1/api")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.APITimeout != 10*time.Second {
			t.Fatalf("expected default API timeout 10s, got %s", cfg.APITimeout)
		}
		if cfg.APISlowTimeout != 60*time.Second {
			t.Fatalf("expected default slow timeout 60s, got %s", cfg.APISlowTimeout)
		}
		if cfg.SQLiteDSN != "file:dashboard.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.SessionSecret != secret {
			t.Fatalf("expected session secret to be %q, got %q", secret, cfg.SessionSecret)
		}
		if cfg.SecureCookies {
			t.Fatalf("expected secure cookies to default to off")
		}
	})

	t.Run("errors when required values are missing", func(t *testing.T) {
		for _, key := range []string{
			"COINOMAD_SESSION_SECRET",
			"COINOMAD_API_BASE_URL",
			"COINOMAD_HTTP_PORT",
			"COINOMAD_SQLITE_DSN",
		} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
		expected := "required environment variables are not set: COINOMAD_API_BASE_URL, COINOMAD_SESSION_SECRET"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses duration and numeric fields", func(t *testing.T) {
		t.Setenv("COINOMAD_SESSION_SECRET", "secret-value")
		t.Setenv("COINOMAD_API_BASE_URL", "https://api.coinomad.example/v1/api/")
		t.Setenv("COINOMAD_HTTP_PORT", "9090")
		t.Setenv("COINOMAD_API_TIMEOUT", "15s")
		t.Setenv("COINOMAD_API_SLOW_TIMEOUT", "90s")
		t.Setenv("COINOMAD_SQLITE_DSN", "file:/tmp/dashboard.db")
		t.Setenv("COINOMAD_SESSION_TTL", "12h")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.APIBaseURL != "https://api.coinomad.example/v1/api" {
			t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
		}
		if cfg.APITimeout != 15*time.Second {
			t.Fatalf("expected API timeout 15s, got %s", cfg.APITimeout)
		}
		if cfg.APISlowTimeout != 90*time.Second {
			t.Fatalf("expected slow timeout 90s, got %s", cfg.APISlowTimeout)
		}
		if cfg.SessionTTL != 12*time.Hour {
			t.Fatalf("expected session TTL 12h, got %s", cfg.SessionTTL)
		}
	})

	t.Run("parses the secure cookie switch", func(t *testing.T) {
		t.Setenv("COINOMAD_SESSION_SECRET", "secret-value")
		t.Setenv("COINOMAD_API_BASE_URL", "http://localhost:3000/v1/api")
		t.Setenv("COINOMAD_SECURE_COOKIES", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if !cfg.SecureCookies {
			t.Fatalf("expected secure cookies to be enabled")
		}

		t.Setenv("COINOMAD_SECURE_COOKIES", "definitely")
		_, err = Load()
		if err == nil {
			t.Fatalf("expected error for invalid secure cookie value")
		}
		expected := "environment variables have invalid values: COINOMAD_SECURE_COOKIES"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("COINOMAD_SESSION_SECRET", "secret-value")
		t.Setenv("COINOMAD_API_BASE_URL", "http://localhost:3000/v1/api")
		t.Setenv("COINOMAD_HTTP_PORT", "not-a-port")
		t.Setenv("COINOMAD_API_TIMEOUT", "-5s")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "environment variables have invalid values: COINOMAD_HTTP_PORT, COINOMAD_API_TIMEOUT"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
