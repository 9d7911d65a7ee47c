// Package web serves the employer-facing dashboard: server-rendered pages
// backed by the external payroll API, with session state held locally.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coinomad/payroll-dashboard/internal/api"
	"github.com/coinomad/payroll-dashboard/internal/logging"
	"github.com/coinomad/payroll-dashboard/internal/schedule"
	"github.com/coinomad/payroll-dashboard/internal/session"
)

// Handler holds the dependencies shared by every page handler.
type Handler struct {
	client        *api.Client
	sessions      *session.Manager
	renderer      *Renderer
	composer      *schedule.Composer
	logger        *slog.Logger
	now           func() time.Time
	secureCookies bool
}

// NewHandler wires the page handlers. A nil clock falls back to time.Now.
// secureCookies marks the session cookie Secure; enable it whenever the
// dashboard is served over HTTPS.
func NewHandler(client *api.Client, sessions *session.Manager, renderer *Renderer, logger *slog.Logger, now func() time.Time, secureCookies bool) *Handler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		client:        client,
		sessions:      sessions,
		renderer:      renderer,
		composer:      schedule.NewComposer(now),
		logger:        logger,
		now:           now,
		secureCookies: secureCookies,
	}
}

type errorView struct {
	Page
	Message string
}

type retryView struct {
	Page
	Message  string
	BackPath string
}

// renderBackendError maps a failed backend call to the page shown for it.
// A 401 ends the session and sends the user back to login; an unreachable
// backend gets a retry page; anything else renders the error page with the
// server's message when one was supplied.
func (h *Handler) renderBackendError(w http.ResponseWriter, r *http.Request, err error, backPath string) {
	ctx := r.Context()

	if errors.Is(err, api.ErrUnauthorized) {
		if sess, ok := SessionFromContext(ctx); ok {
			_ = h.sessions.Destroy(ctx, sess.ID)
		}
		clearSessionCookie(w, h.secureCookies)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if errors.Is(err, api.ErrNetwork) {
		logging.Or(ctx, h.logger).ErrorContext(ctx, "backend unreachable", "error", err)
		h.renderer.Render(ctx, w, http.StatusBadGateway, "retry", retryView{
			Page:     h.page(r, "Connection problem", ""),
			Message:  "Could not reach the payroll service. Check your connection and try again.",
			BackPath: backPath,
		})
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		logging.Or(ctx, h.logger).ErrorContext(ctx, "backend rejected request", "status", apiErr.Status, "error", err)
		h.renderer.Render(ctx, w, http.StatusBadGateway, "error", errorView{
			Page:    h.page(r, "Something went wrong", ""),
			Message: apiErr.Message,
		})
		return
	}

	logging.Or(ctx, h.logger).ErrorContext(ctx, "request failed", "error", err)
	h.renderer.Render(ctx, w, http.StatusInternalServerError, "error", errorView{
		Page:    h.page(r, "Something went wrong", ""),
		Message: "An unexpected error occurred. Please try again.",
	})
}

// page builds the shared view fields, picking up the signed-in name when a
// session is present.
func (h *Handler) page(r *http.Request, title, active string) Page {
	p := Page{Title: title, Active: active}
	if sess, ok := SessionFromContext(r.Context()); ok {
		p.FirstName = sess.FirstName
	}
	return p
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
