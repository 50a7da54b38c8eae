// Package tokenstore issues short-lived tokens for voice-call links. Tokens
// are held in memory only and carry an opaque payload that can be read any
// number of times until the token expires or is explicitly invalidated.
package tokenstore

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when a token does not exist, was invalidated, or
// has expired.
var ErrNotFound = eris.New("tokenstore: token not found or expired")

const tokenBytes = 32

type entry struct {
	payload   map[string]any
	expiresAt time.Time
}

// Store is an in-memory token store with per-token expiry.
type Store struct {
	mu     sync.Mutex
	tokens map[string]entry
	now    func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		tokens: make(map[string]entry),
		now:    time.Now,
	}
}

// Issue creates a new token carrying payload, valid for ttl. It returns the
// token and its expiry time.
func (s *Store) Issue(payload map[string]any, ttl time.Duration) (string, time.Time, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, eris.Wrap(err, "tokenstore: generate token")
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	expiresAt := s.now().Add(ttl)

	s.mu.Lock()
	s.tokens[token] = entry{
		payload:   payload,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()

	return token, expiresAt, nil
}

// Get returns the payload for a live token. Tokens stay valid until they
// expire or are invalidated, so a link can be opened more than once. An
// expired token is removed on access.
func (s *Store) Get(token string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.tokens, token)
		return nil, ErrNotFound
	}
	return e.payload, nil
}

// Invalidate removes a token regardless of expiry.
func (s *Store) Invalidate(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token]; !ok {
		return ErrNotFound
	}
	delete(s.tokens, token)
	return nil
}

// Sweep removes expired tokens and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, e := range s.tokens {
		if now.After(e.expiresAt) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of live tokens, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
