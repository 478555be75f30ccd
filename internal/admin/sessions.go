// Package admin provides the session gate guarding feed mutation endpoints.
package admin

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Session errors.
var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrInvalidSession  = errors.New("invalid or expired admin session")
)

// DefaultSessionTTL is how long a minted session stays valid.
const DefaultSessionTTL = 24 * time.Hour

// tokenLength is the number of random bytes in a session token.
const tokenLength = 32

// SessionManager owns the process-wide set of active admin sessions. A
// session is valid from a successful login until logout or TTL expiry,
// whichever comes first. Expiry is checked lazily at verification time;
// there are no background timers, so sessions simply vanish on restart.
type SessionManager struct {
	password string
	ttl      time.Duration
	logger   zerolog.Logger

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
}

// SessionManagerConfig holds configuration for the session manager.
type SessionManagerConfig struct {
	// Password is the shared admin secret (required).
	Password string

	// TTL is the session lifetime. Defaults to DefaultSessionTTL.
	TTL time.Duration

	// Logger for session events.
	Logger zerolog.Logger
}

// NewSessionManager creates a new session manager.
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionManager{
		password: cfg.Password,
		ttl:      ttl,
		logger:   cfg.Logger,
		sessions: make(map[string]time.Time),
	}
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Login checks the password and, on success, mints a new session token.
// Returns ErrInvalidPassword otherwise; the active set is left untouched.
func (m *SessionManager) Login(password string) (string, error) {
	if m.password == "" {
		return "", ErrInvalidPassword
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", ErrInvalidPassword
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("minting session token: %w", err)
	}

	m.mu.Lock()
	m.sessions[token] = time.Now().Add(m.ttl)
	m.mu.Unlock()

	m.logger.Info().Msg("admin session created")
	return token, nil
}

// Verify checks that the token was minted by a successful login and has not
// been logged out or expired. Expired tokens are dropped from the set.
func (m *SessionManager) Verify(token string) error {
	if token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.sessions[token]
	if !ok {
		return ErrInvalidSession
	}

	if time.Now().After(expiry) {
		delete(m.sessions, token)
		return ErrInvalidSession
	}

	return nil
}

// Logout removes the token immediately, independent of its TTL.
// Returns ErrInvalidSession if the token is not in the active set.
func (m *SessionManager) Logout(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return ErrInvalidSession
	}

	delete(m.sessions, token)
	m.logger.Info().Msg("admin session revoked")
	return nil
}

// ActiveSessions returns the number of currently tracked sessions, including
// any that expired but have not been verified (and therefore pruned) since.
func (m *SessionManager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// generateToken creates a new opaque session token.
func generateToken() (string, error) {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
