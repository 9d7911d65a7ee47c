package web

import (
	"net/http"
	"strings"
)

// RouterConfig bundles the handler and middleware chains for the two route
// groups: public auth pages and session-gated dashboard pages.
type RouterConfig struct {
	Handler    *Handler
	Middleware []func(http.Handler) http.Handler
	Gate       func(http.Handler) http.Handler
}

// NewRouter mounts every page. The Gate middleware wraps only the
// authenticated routes; Middleware wraps everything.
func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handler

	public := http.NewServeMux()
	public.HandleFunc("/login", h.Login)
	public.HandleFunc("/signup", h.Signup)
	public.HandleFunc("/verify-email", h.VerifyEmail)
	public.HandleFunc("/verify-email/resend", h.ResendCode)
	public.HandleFunc("/logout", h.Logout)

	private := http.NewServeMux()
	private.HandleFunc("/dashboard", h.Dashboard)
	private.HandleFunc("/transactions", h.Transactions)
	private.HandleFunc("/payroll", h.Payroll)
	private.HandleFunc("/reports", h.Reports)
	private.HandleFunc("/schedule", h.SchedulePage)
	private.HandleFunc("/schedule/specific", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		h.CreateSpecific(w, r)
	})
	private.HandleFunc("/schedule/recurring", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		h.CreateRecurring(w, r)
	})
	private.HandleFunc("/schedules/", func(w http.ResponseWriter, r *http.Request) {
		id, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/schedules/"), "/delete")
		if !ok || id == "" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		h.CancelSchedule(w, r, id)
	})
	private.HandleFunc("/employees", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.Employees(w, r)
		case http.MethodPost:
			h.CreateEmployee(w, r)
		default:
			methodNotAllowed(w, "GET, POST")
		}
	})
	private.HandleFunc("/employees/new", h.NewEmployee)
	private.HandleFunc("/employees/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/employees/")
		switch {
		case strings.HasSuffix(rest, "/edit"):
			if r.Method != http.MethodGet {
				methodNotAllowed(w, "GET")
				return
			}
			h.EditEmployee(w, r, strings.TrimSuffix(rest, "/edit"))
		case strings.HasSuffix(rest, "/delete"):
			if r.Method != http.MethodPost {
				methodNotAllowed(w, "POST")
				return
			}
			h.DeleteEmployee(w, r, strings.TrimSuffix(rest, "/delete"))
		default:
			if rest == "" || r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			h.UpdateEmployee(w, r, rest)
		}
	})

	gated := http.Handler(private)
	if cfg.Gate != nil {
		gated = cfg.Gate(private)
	}

	root := http.NewServeMux()
	root.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.NotFound(w, r)
	})
	root.Handle("/login", public)
	root.Handle("/signup", public)
	root.Handle("/verify-email", public)
	root.Handle("/verify-email/", public)
	root.Handle("/logout", public)
	for _, path := range []string{
		"/dashboard", "/transactions", "/payroll", "/reports",
		"/schedule", "/schedule/", "/schedules/",
		"/employees", "/employees/",
	} {
		root.Handle(path, gated)
	}

	var handler http.Handler = root
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}
	return handler
}
