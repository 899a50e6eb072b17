package session

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/BloggingApp/web-client/internal/service"
	"github.com/google/uuid"
)

const PostCreatedFlash = "Post created"

// Session is one browser's set of components.
type Session struct {
	ID       string
	Thread   *service.CommentThread
	Composer *service.PostComposer

	mu         sync.Mutex
	alert      string
	flash      string
	loginState string
	lastSeen   time.Time
}

// NewLoginState issues the value the identity provider must hand back to
// the login callback. Issuing a new one invalidates the previous one.
func (s *Session) NewLoginState() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loginState = uuid.NewString()
	return s.loginState
}

// ConsumeLoginState reports whether state is the one issued to this session.
// A state is accepted at most once.
func (s *Session) ConsumeLoginState(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expected := s.loginState
	s.loginState = ""
	return expected != "" && subtle.ConstantTimeCompare([]byte(expected), []byte(state)) == 1
}

func (s *Session) setAlert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alert = message
}

func (s *Session) setFlash(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flash = message
}

// TakeMessages returns and clears the pending alert and flash message.
func (s *Session) TakeMessages() (alert string, flash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, flash = s.alert, s.flash
	s.alert, s.flash = "", ""
	return alert, flash
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return now.Sub(s.lastSeen)
}
