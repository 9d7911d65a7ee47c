package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// ErrSealCorrupt indicates a sealed token that fails authentication, e.g.
// after a session-secret rotation or database tampering.
var ErrSealCorrupt = errors.New("session: sealed token failed to open")

// Sealer encrypts bearer tokens at rest so a copied session database does not
// leak live backend credentials.
type Sealer struct {
	key []byte
}

// NewSealer derives the sealing key from the configured session secret.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("session: sealing secret is required")
	}
	key := make([]byte, chacha20poly1305.KeySize)
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte("coinomad-session-token"))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("session: derive sealing key: %w", err)
	}
	return &Sealer{key: key}, nil
}

// Seal encrypts the token with a random nonce prefixed to the ciphertext.
func (s *Sealer) Seal(plain string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("session: build cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("session: generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, []byte(plain), nil), nil
}

// Open decrypts a sealed token.
func (s *Sealer) Open(sealed []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("session: build cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return "", ErrSealCorrupt
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrSealCorrupt
	}
	return string(plain), nil
}
