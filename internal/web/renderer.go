package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coinomad/payroll-dashboard/internal/logging"
)

//go:embed templates
var templateFS embed.FS

var pageNames = []string{
	"login",
	"signup",
	"verify_email",
	"dashboard",
	"employees",
	"employee_form",
	"schedule",
	"payroll",
	"reports",
	"transactions",
	"error",
	"retry",
}

// Page carries the fields every view shares.
type Page struct {
	Title     string
	FirstName string
	Active    string
	Flash     string
}

// Renderer executes embedded page templates inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses every page template against the layout.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.tmpl").Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.tmpl",
			"templates/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("web: parse template %q: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes a page. Templates execute into a buffer first so an execution
// failure never leaks a half-written body.
func (rd *Renderer) Render(ctx context.Context, w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		logging.Or(ctx, rd.logger).ErrorContext(ctx, "unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.tmpl", data); err != nil {
		logging.Or(ctx, rd.logger).ErrorContext(ctx, "failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var templateFuncs = template.FuncMap{
	"amount":    formatAmount,
	"upper":     strings.ToUpper,
	"titlecase": titlecase,
	"timestamp": formatTimestamp,
	"shorthash": shortHash,
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func titlecase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatTimestamp renders a backend timestamp for display. Unparseable values
// pass through untouched.
func formatTimestamp(raw string) string {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return parsed.UTC().Format("Jan 2, 2006 15:04 UTC")
}

func shortHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:8] + "…" + hash[len(hash)-4:]
}
