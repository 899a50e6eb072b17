package session

import (
	"sync"
	"time"

	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/config"
	"github.com/BloggingApp/web-client/internal/service"
	"github.com/google/uuid"
)

type CredentialSource interface {
	For(sessionID string) auth.Provider
}

// Store keeps sessions in memory. Sessions idle for longer than the TTL are
// evicted on the next lookup and their threads closed. Once the store holds
// limit sessions, the least recently seen one makes room for a new one.
type Store struct {
	services *service.Service
	creds    CredentialSource
	ttl      time.Duration
	limit    int
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore(services *service.Service, creds CredentialSource, cfg config.SessionConfig) *Store {
	return &Store{
		services: services,
		creds:    creds,
		ttl:      cfg.TTL,
		limit:    cfg.MaxSessions,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session for id, or creates a new one when id is
// unknown or expired. The second result reports whether it was created.
func (s *Store) Get(id string) (*Session, bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked(now)

	if sess, ok := s.sessions[id]; ok {
		sess.touch(now)
		return sess, false
	}

	if s.limit > 0 && len(s.sessions) >= s.limit {
		s.evictOldestLocked(now)
	}

	sess := s.newSession(uuid.NewString())
	sess.touch(now)
	s.sessions[sess.ID] = sess
	return sess, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *Store) newSession(id string) *Session {
	sess := &Session{ID: id}
	provider := s.creds.For(id)
	sess.Thread = s.services.NewCommentThread(provider)
	sess.Composer = s.services.NewPostComposer(
		provider,
		func() { sess.setFlash(PostCreatedFlash) },
		sess.setAlert,
	)
	return sess
}

func (s *Store) evictOldestLocked(now time.Time) {
	var (
		oldestID string
		oldest   time.Duration = -1
	)
	for id, sess := range s.sessions {
		if idle := sess.idleSince(now); idle > oldest {
			oldestID, oldest = id, idle
		}
	}
	if sess, ok := s.sessions[oldestID]; ok {
		sess.Thread.Close()
		delete(s.sessions, oldestID)
	}
}

func (s *Store) evictLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			sess.Thread.Close()
			delete(s.sessions, id)
		}
	}
}
