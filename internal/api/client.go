// Package api implements the typed HTTP client for the external payroll
// backend. The backend owns all scheduling, blockchain interaction, and
// persistence; this client only forwards requests and decodes the JSON
// envelope the backend wraps every response in.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coinomad/payroll-dashboard/internal/logging"
)

var (
	// ErrUnauthorized is returned for HTTP 401 responses. Callers must clear
	// the stored session and send the user back to the login view.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrNetwork is returned when the backend could not be reached at all:
	// connection failures and timeouts. There is no response body to surface.
	ErrNetwork = errors.New("api: backend unreachable")
)

// APIError carries a non-success response from the backend. Message is the
// server-supplied text when present.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "api: request failed"
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// Token is the opaque bearer credential issued by the backend at login.
type Token string

// Client talks to the payroll backend. Wallet reads and schedule creation go
// through a longer timeout; everything else uses the default.
type Client struct {
	baseURL    string
	httpClient *http.Client
	slowClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a backend client. baseURL must not end with a slash.
func NewClient(baseURL string, timeout, slowTimeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if slowTimeout <= 0 {
		slowTimeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		slowClient: &http.Client{Timeout: slowTimeout},
		logger:     logger,
	}
}

// envelope is the common wrapper the backend places around response bodies.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// do issues one request and decodes the body into out when provided. A nil
// token sends no Authorization header. Failures are terminal for the attempt;
// no retries are issued anywhere in this client.
func (c *Client) do(ctx context.Context, method, path string, token Token, body, out any, slow bool) error {
	if c == nil {
		return errors.New("api: client is nil")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+string(token))
	}

	client := c.httpClient
	if slow {
		client = c.slowClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logging.Or(ctx, c.logger).WarnContext(ctx, "backend request failed",
			"method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	logging.Or(ctx, c.logger).DebugContext(ctx, "backend request completed",
		"method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body on an otherwise successful status is tolerated;
		// the envelope stays zero-valued and the status code decides.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}
