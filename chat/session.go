package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the explicit context for one conversation: a browser cookie,
// an SSH connection, or a single throwaway ask. It owns the history its
// asks append to.
type Session struct {
	ID        string
	History   *History
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// NewSession creates a session with a fresh ID and empty history.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		History:   NewHistory(),
		CreatedAt: now,
		lastSeen:  now,
	}
}

// Touch marks the session as just used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// LastSeen reports when the session last handled an ask or render.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
