package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	sealer, err := NewSealer("unit-test-secret")
	require.NoError(t, err)

	sealed, err := sealer.Seal("bearer-token-value")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "bearer-token-value")

	plain, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-value", plain)
}

func TestSealer_NoncesDiffer(t *testing.T) {
	sealer, err := NewSealer("unit-test-secret")
	require.NoError(t, err)

	first, err := sealer.Seal("same-token")
	require.NoError(t, err)
	second, err := sealer.Seal("same-token")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSealer_RejectsTamperedCiphertext(t *testing.T) {
	sealer, err := NewSealer("unit-test-secret")
	require.NoError(t, err)

	sealed, err := sealer.Seal("bearer-token-value")
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0x01

	_, err = sealer.Open(sealed)
	require.ErrorIs(t, err, ErrSealCorrupt)
}

func TestSealer_RejectsForeignSecret(t *testing.T) {
	sealer, err := NewSealer("secret-one")
	require.NoError(t, err)
	other, err := NewSealer("secret-two")
	require.NoError(t, err)

	sealed, err := sealer.Seal("bearer-token-value")
	require.NoError(t, err)

	_, err = other.Open(sealed)
	require.ErrorIs(t, err, ErrSealCorrupt)
}

func TestSealer_RejectsTruncatedInput(t *testing.T) {
	sealer, err := NewSealer("unit-test-secret")
	require.NoError(t, err)

	_, err = sealer.Open([]byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrSealCorrupt)
}

func TestNewSealer_RequiresSecret(t *testing.T) {
	_, err := NewSealer("")
	require.Error(t, err)
}
