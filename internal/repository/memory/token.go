package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// Token keeps session tokens in process memory. Used when no Redis address
// is configured and in tests.
type Token struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewToken() *Token {
	return &Token{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *Token) Get(_ context.Context, sessionID string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && r.now().After(e.expiresAt) {
		delete(r.entries, sessionID)
		return "", false, nil
	}

	return e.token, true, nil
}

func (r *Token) Set(_ context.Context, sessionID string, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := entry{token: token}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}
	r.entries[sessionID] = e
	return nil
}

func (r *Token) Del(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, sessionID)
	return nil
}
