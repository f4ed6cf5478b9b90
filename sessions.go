package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/csv610/dialectica/chat"
)

const sessionCookie = "dialectica_session"

// sessionRegistry maps cookie values to live sessions and sweeps the ones
// nobody has touched within the TTL.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*chat.Session
	ttl      time.Duration
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*chat.Session),
		ttl:      ttl,
	}
}

// get returns the session named by r's cookie, creating a fresh one (and
// setting the cookie on w) when the cookie is absent or already swept.
func (reg *sessionRegistry) get(w http.ResponseWriter, r *http.Request) *chat.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		reg.mu.Lock()
		s, ok := reg.sessions[c.Value]
		reg.mu.Unlock()
		if ok {
			s.Touch()
			return s
		}
	}

	s := chat.NewSession()
	reg.mu.Lock()
	reg.sessions[s.ID] = s
	reg.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// count reports the number of live sessions.
func (reg *sessionRegistry) count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// sweep drops sessions idle past the TTL and reports how many went.
func (reg *sessionRegistry) sweep() int {
	cutoff := time.Now().Add(-reg.ttl)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	for id, s := range reg.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(reg.sessions, id)
			removed++
		}
	}
	return removed
}

// start runs the sweeper for the life of the process.
func (reg *sessionRegistry) start() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			reg.sweep()
		}
	}()
}
