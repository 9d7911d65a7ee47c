// Package session is the single boundary around persisted session state: the
// bearer token issued by the payroll backend, the cached first name shown in
// the navigation, and the transient unverified email held during signup.
// Nothing else reads or writes that state directly.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

// ErrTokenUndecodable indicates the stored bearer token could not be decoded
// into employer claims. The user must log in again before actions that need
// the employer identity.
var ErrTokenUndecodable = errors.New("session: bearer token is not decodable")

// Claims are the fields the backend embeds in its bearer tokens.
type Claims struct {
	EmployerID string
	Email      string
	ExpiresAt  time.Time
}

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// DecodeClaims extracts employer claims from a backend-issued JWT. The token
// is parsed without signature verification: the backend is the issuer and
// sole verifier, and this process never holds its signing key. The decoded
// identity is used only to address requests that the backend re-authorizes.
func DecodeClaims(token api.Token) (Claims, error) {
	raw := strings.TrimSpace(string(token))
	if raw == "" {
		return Claims{}, ErrTokenUndecodable
	}

	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenUndecodable, err)
	}
	if strings.TrimSpace(claims.ID) == "" {
		return Claims{}, ErrTokenUndecodable
	}

	out := Claims{EmployerID: claims.ID, Email: claims.Email}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
