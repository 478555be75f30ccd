// Package device provides the registry of push notification destinations.
package device

import (
	"errors"
	"sync"
	"time"
)

// Registry errors.
var (
	ErrTokenMissing = errors.New("device token is required")
)

// Token is an opaque push destination identifier issued by the push gateway.
type Token struct {
	Value        string
	RegisteredAt time.Time
}

// Registry is a deduplicated, process-owned set of push tokens. Tokens are
// never explicitly removed; stale destinations are pruned only by the push
// gateway's own delivery failures.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{
		tokens: make(map[string]Token),
	}
}

// Register adds a token to the set. Re-registering an existing token is a
// no-op that still succeeds. An empty token fails with ErrTokenMissing.
func (r *Registry) Register(token string) error {
	if token == "" {
		return ErrTokenMissing
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; ok {
		return nil
	}

	r.tokens[token] = Token{Value: token, RegisteredAt: time.Now()}
	return nil
}

// Tokens returns a snapshot of all registered token values.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0, len(r.tokens))
	for value := range r.tokens {
		tokens = append(tokens, value)
	}
	return tokens
}

// Count returns the number of registered tokens.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
