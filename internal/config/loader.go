package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the dashboard.
type Config struct {
	HTTPPort       int
	APIBaseURL     string
	APITimeout     time.Duration
	APISlowTimeout time.Duration
	SQLiteDSN      string
	SessionSecret  string
	SessionTTL     time.Duration
	SecureCookies  bool
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; required values are validated and
// reported together so an operator sees every problem in one pass.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       8080,
		APITimeout:     10 * time.Second,
		APISlowTimeout: 60 * time.Second,
		SQLiteDSN:      "file:dashboard.db?_foreign_keys=on",
		SessionTTL:     24 * time.Hour,
	}

	missing := make([]string, 0, 2)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("COINOMAD_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "COINOMAD_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if baseURL := strings.TrimSpace(os.Getenv("COINOMAD_API_BASE_URL")); baseURL == "" {
		missing = append(missing, "COINOMAD_API_BASE_URL")
	} else {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			invalid = append(invalid, "COINOMAD_API_BASE_URL")
		} else {
			cfg.APIBaseURL = strings.TrimRight(baseURL, "/")
		}
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("COINOMAD_API_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "COINOMAD_API_TIMEOUT")
		} else {
			cfg.APITimeout = timeout
		}
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("COINOMAD_API_SLOW_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "COINOMAD_API_SLOW_TIMEOUT")
		} else {
			cfg.APISlowTimeout = timeout
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("COINOMAD_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("COINOMAD_SESSION_SECRET")); secret == "" {
		missing = append(missing, "COINOMAD_SESSION_SECRET")
	} else {
		cfg.SessionSecret = secret
	}

	if secureValue := strings.TrimSpace(os.Getenv("COINOMAD_SECURE_COOKIES")); secureValue != "" {
		secure, err := strconv.ParseBool(secureValue)
		if err != nil {
			invalid = append(invalid, "COINOMAD_SECURE_COOKIES")
		} else {
			cfg.SecureCookies = secure
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("COINOMAD_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "COINOMAD_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
