package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

func issueToken(t *testing.T, claims jwt.MapClaims) api.Token {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-key"))
	require.NoError(t, err)
	return api.Token(signed)
}

func TestDecodeClaims_ExtractsEmployerIdentity(t *testing.T) {
	exp := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	token := issueToken(t, jwt.MapClaims{
		"id":    "employer-42",
		"email": "admin@coinomad.example",
		"exp":   exp.Unix(),
	})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "employer-42", claims.EmployerID)
	assert.Equal(t, "admin@coinomad.example", claims.Email)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestDecodeClaims_MissingExpiryIsTolerated(t *testing.T) {
	token := issueToken(t, jwt.MapClaims{"id": "employer-42"})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "employer-42", claims.EmployerID)
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestDecodeClaims_RejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token api.Token
	}{
		{name: "empty", token: ""},
		{name: "whitespace", token: "   "},
		{name: "not a jwt", token: "plain-opaque-token"},
		{name: "missing id claim", token: issueToken(t, jwt.MapClaims{"email": "x@example.com"})},
		{name: "blank id claim", token: issueToken(t, jwt.MapClaims{"id": "  "})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeClaims(tc.token)
			require.ErrorIs(t, err, ErrTokenUndecodable)
		})
	}
}
