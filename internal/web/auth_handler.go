package web

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

type loginView struct {
	Page
	Email string
	Error string
}

// Login serves the login form and exchanges credentials for a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			if _, err := h.sessions.Get(r.Context(), cookie.Value); err == nil {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
		}
		view := loginView{Page: h.page(r, "Sign in", "")}
		if r.URL.Query().Get("verified") == "1" {
			view.Flash = "Email verified. You can sign in now."
		}
		h.renderer.Render(r.Context(), w, http.StatusOK, "login", view)
	case http.MethodPost:
		h.submitLogin(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) submitLogin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if email == "" || password == "" {
		h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "login", loginView{
			Page:  h.page(r, "Sign in", ""),
			Email: email,
			Error: "Email and password are required.",
		})
		return
	}

	result, err := h.client.Login(r.Context(), api.Credentials{Email: email, Password: password})
	if err != nil {
		var apiErr *api.APIError
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			h.renderer.Render(r.Context(), w, http.StatusUnauthorized, "login", loginView{
				Page:  h.page(r, "Sign in", ""),
				Email: email,
				Error: "Invalid email or password.",
			})
		case errors.As(err, &apiErr):
			h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "login", loginView{
				Page:  h.page(r, "Sign in", ""),
				Email: email,
				Error: apiErr.Message,
			})
		default:
			h.renderBackendError(w, r, err, "/login")
		}
		return
	}

	sess, err := h.sessions.Create(r.Context(), result.Token, result.FirstName)
	if err != nil {
		h.renderBackendError(w, r, err, "/login")
		return
	}
	setSessionCookie(w, sess, h.secureCookies)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type signupForm struct {
	FirstName string
	LastName  string
	Email     string
}

type signupView struct {
	Page
	Form   signupForm
	Errors map[string]string
}

// Signup serves the registration form and starts email verification.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderer.Render(r.Context(), w, http.StatusOK, "signup", signupView{Page: h.page(r, "Create account", "")})
	case http.MethodPost:
		h.submitSignup(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) submitSignup(w http.ResponseWriter, r *http.Request) {
	form := signupForm{
		FirstName: strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:  strings.TrimSpace(r.PostFormValue("lastName")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")

	fieldErrors := map[string]string{}
	if form.FirstName == "" {
		fieldErrors["firstName"] = "First name is required."
	}
	if form.LastName == "" {
		fieldErrors["lastName"] = "Last name is required."
	}
	if form.Email == "" {
		fieldErrors["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(form.Email); err != nil {
		fieldErrors["email"] = "Enter a valid email address."
	}
	if len(password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters."
	}
	if len(fieldErrors) > 0 {
		h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "signup", signupView{
			Page:   h.page(r, "Create account", ""),
			Form:   form,
			Errors: fieldErrors,
		})
		return
	}

	_, err := h.client.Signup(r.Context(), api.SignupRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  password,
	})
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "signup", signupView{
				Page:   h.page(r, "Create account", ""),
				Form:   form,
				Errors: map[string]string{"form": apiErr.Message},
			})
			return
		}
		h.renderBackendError(w, r, err, "/signup")
		return
	}

	state, err := h.sessions.BeginSignup(r.Context(), form.Email)
	if err != nil {
		h.renderBackendError(w, r, err, "/signup")
		return
	}
	http.Redirect(w, r, "/verify-email?state="+state, http.StatusSeeOther)
}

type verifyView struct {
	Page
	Email string
	State string
	Error string
}

// VerifyEmail serves the OTP entry form and confirms the code.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.showVerifyEmail(w, r)
	case http.MethodPost:
		h.submitVerifyEmail(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) showVerifyEmail(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	email, err := h.sessions.PendingEmail(r.Context(), state)
	if err != nil {
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	view := verifyView{Page: h.page(r, "Verify your email", ""), Email: email, State: state}
	if r.URL.Query().Get("resent") == "1" {
		view.Flash = "A new verification code is on its way."
	}
	h.renderer.Render(r.Context(), w, http.StatusOK, "verify_email", view)
}

func (h *Handler) submitVerifyEmail(w http.ResponseWriter, r *http.Request) {
	state := r.PostFormValue("state")
	code := strings.TrimSpace(r.PostFormValue("code"))

	email, err := h.sessions.PendingEmail(r.Context(), state)
	if err != nil {
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	if !validOTP(code) {
		h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "verify_email", verifyView{
			Page:  h.page(r, "Verify your email", ""),
			Email: email,
			State: state,
			Error: "Enter the 6-digit code from your email.",
		})
		return
	}

	if err := h.client.VerifyEmail(r.Context(), email, code); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "verify_email", verifyView{
				Page:  h.page(r, "Verify your email", ""),
				Email: email,
				State: state,
				Error: apiErr.Message,
			})
			return
		}
		h.renderBackendError(w, r, err, "/verify-email?state="+state)
		return
	}

	_ = h.sessions.CompleteSignup(r.Context(), state)
	http.Redirect(w, r, "/login?verified=1", http.StatusSeeOther)
}

// ResendCode triggers a fresh verification email for a pending signup.
func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	state := r.PostFormValue("state")
	email, err := h.sessions.PendingEmail(r.Context(), state)
	if err != nil {
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	if err := h.client.ResendToken(r.Context(), email); err != nil {
		h.renderBackendError(w, r, err, "/verify-email?state="+state)
		return
	}
	http.Redirect(w, r, "/verify-email?state="+state+"&resent=1", http.StatusSeeOther)
}

// Logout revokes the backend token, drops the local session, and clears the
// cookie. Backend failures do not keep the user signed in locally.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sess, err := h.sessions.Get(r.Context(), cookie.Value); err == nil {
			_ = h.client.Logout(r.Context(), sess.Token)
		}
		_ = h.sessions.Destroy(r.Context(), cookie.Value)
	}
	clearSessionCookie(w, h.secureCookies)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func validOTP(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
