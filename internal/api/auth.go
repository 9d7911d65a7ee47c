package api

import (
	"context"
	"net/http"
)

// Credentials are the employer's login fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the successful login response.
type LoginResult struct {
	Token     Token  `json:"accessToken"`
	FirstName string `json:"firstName"`
}

// SignupRequest registers a new employer account; the backend sends a
// verification code to the given email address.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SignupResult is the successful registration response.
type SignupResult struct {
	UserID string `json:"userId"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/employerauth/login", "", creds, &out, false); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Signup registers an employer and triggers the OTP verification email.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResult, error) {
	var out SignupResult
	if err := c.do(ctx, http.MethodPost, "/employerauth/signup/email", "", req, &out, false); err != nil {
		return SignupResult{}, err
	}
	return out, nil
}

// VerifyEmail confirms the emailed OTP and activates the account.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "verificationCode": code}
	return c.do(ctx, http.MethodPost, "/employerauth/signup/verify-email", "", body, nil, false)
}

// ResendToken asks the backend to send a fresh OTP to the given address.
func (c *Client) ResendToken(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/employerauth/signup/resend-token", "", body, nil, false)
}

// Logout invalidates the session server-side. The local session is cleared
// by the caller regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token Token) error {
	return c.do(ctx, http.MethodPost, "/employerauth/logout", token, nil, nil, false)
}
