package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

var (
	// ErrNotFound is returned when no session or pending signup matches.
	ErrNotFound = errors.New("session: not found")
	// ErrExpired is returned for sessions past their TTL.
	ErrExpired = errors.New("session: expired")
)

// Record is a persisted session row. The bearer token is stored sealed.
type Record struct {
	ID          string
	SealedToken []byte
	FirstName   string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// PendingSignup holds the unverified email address between registration and
// OTP confirmation, the only transient signup state the dashboard keeps.
type PendingSignup struct {
	ID        string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store abstracts session persistence.
type Store interface {
	SaveSession(ctx context.Context, rec Record) error
	FindSession(ctx context.Context, id string) (Record, error)
	DeleteSession(ctx context.Context, id string) error
	SavePendingSignup(ctx context.Context, pending PendingSignup) error
	FindPendingSignup(ctx context.Context, id string) (PendingSignup, error)
	DeletePendingSignup(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

// Session is the in-memory view handed to request handlers.
type Session struct {
	ID        string
	Token     api.Token
	FirstName string
	ExpiresAt time.Time
}

// EmployerClaims decodes the employer identity from the session's token.
func (s Session) EmployerClaims() (Claims, error) {
	return DecodeClaims(s.Token)
}

const signupTTL = 30 * time.Minute

// Manager creates, loads, and destroys sessions. It is the only component
// that touches the store or the sealer.
type Manager struct {
	store  Store
	sealer *Sealer
	ttl    time.Duration
	idGen  func() string
	now    func() time.Time
}

// NewManager wires the session boundary. A nil idGen falls back to UUIDs and
// a nil clock to time.Now.
func NewManager(store Store, sealer *Sealer, ttl time.Duration, idGen func() string, now func() time.Time) *Manager {
	if idGen == nil {
		idGen = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, sealer: sealer, ttl: ttl, idGen: idGen, now: now}
}

// Create persists a new session for a freshly issued bearer token and
// returns it. Expired rows are swept opportunistically.
func (m *Manager) Create(ctx context.Context, token api.Token, firstName string) (Session, error) {
	now := m.now().UTC()
	_ = m.store.DeleteExpired(ctx, now)

	sealed, err := m.sealer.Seal(string(token))
	if err != nil {
		return Session{}, err
	}

	rec := Record{
		ID:          m.idGen(),
		SealedToken: sealed,
		FirstName:   firstName,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
	}
	if err := m.store.SaveSession(ctx, rec); err != nil {
		return Session{}, err
	}
	return Session{ID: rec.ID, Token: token, FirstName: firstName, ExpiresAt: rec.ExpiresAt}, nil
}

// Get loads and unseals the session with the given ID. Expired sessions are
// deleted and reported as ErrExpired.
func (m *Manager) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotFound
	}
	rec, err := m.store.FindSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if !rec.ExpiresAt.After(m.now().UTC()) {
		_ = m.store.DeleteSession(ctx, id)
		return Session{}, ErrExpired
	}

	token, err := m.sealer.Open(rec.SealedToken)
	if err != nil {
		// A token that no longer opens is useless; drop the session.
		_ = m.store.DeleteSession(ctx, id)
		return Session{}, err
	}
	return Session{ID: rec.ID, Token: api.Token(token), FirstName: rec.FirstName, ExpiresAt: rec.ExpiresAt}, nil
}

// Destroy removes the session. Called on logout and on any backend 401.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	err := m.store.DeleteSession(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// BeginSignup records the unverified email and returns the state ID the
// verification page uses to address it.
func (m *Manager) BeginSignup(ctx context.Context, email string) (string, error) {
	now := m.now().UTC()
	pending := PendingSignup{
		ID:        m.idGen(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(signupTTL),
	}
	if err := m.store.SavePendingSignup(ctx, pending); err != nil {
		return "", err
	}
	return pending.ID, nil
}

// PendingEmail resolves the unverified email for a signup in progress.
func (m *Manager) PendingEmail(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrNotFound
	}
	pending, err := m.store.FindPendingSignup(ctx, id)
	if err != nil {
		return "", err
	}
	if !pending.ExpiresAt.After(m.now().UTC()) {
		_ = m.store.DeletePendingSignup(ctx, id)
		return "", ErrExpired
	}
	return pending.Email, nil
}

// CompleteSignup clears the stored email once verification succeeds.
func (m *Manager) CompleteSignup(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	err := m.store.DeletePendingSignup(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
