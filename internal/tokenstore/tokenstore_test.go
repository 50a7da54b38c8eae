package tokenstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndGet(t *testing.T) {
	s := New()

	payload := map[string]any{"user_id": "u-1", "update": "AI Act amendment"}
	token, expiresAt, err := s.Issue(payload, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := s.Get(token)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Links stay valid until expiry; a second read succeeds.
	got, err = s.Get(token)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestGet_Unknown(t *testing.T) {
	s := New()
	_, err := s.Get("no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_Expired(t *testing.T) {
	s := New()
	now := time.Now()
	s.now = func() time.Time { return now }

	token, _, err := s.Issue(map[string]any{"k": "v"}, time.Minute)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err = s.Get(token)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestInvalidate(t *testing.T) {
	s := New()

	token, _, err := s.Issue(map[string]any{"k": "v"}, time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Invalidate(token))
	assert.ErrorIs(t, s.Invalidate(token), ErrNotFound)

	_, err = s.Get(token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweep(t *testing.T) {
	s := New()
	now := time.Now()
	s.now = func() time.Time { return now }

	_, _, err := s.Issue(map[string]any{"k": "expired"}, time.Minute)
	require.NoError(t, err)
	live, _, err := s.Issue(map[string]any{"k": "live"}, time.Hour)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(10 * time.Minute) }

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(live)
	require.NoError(t, err)
	assert.Equal(t, "live", got["k"])
}

func TestTokensAreUnique(t *testing.T) {
	s := New()
	seen := make(map[string]bool)
	for range 100 {
		token, _, err := s.Issue(nil, time.Hour)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				token, _, err := s.Issue(map[string]any{"k": "v"}, time.Minute)
				assert.NoError(t, err)
				_, _ = s.Get(token)
				_ = s.Invalidate(token)
			}
		}()
	}
	wg.Wait()
	s.Sweep()
}
