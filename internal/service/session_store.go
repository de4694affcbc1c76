package service

import (
	"context"
	"sync"
	"time"

	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/view"
)

// SessionStore keeps the gallery sessions of the HTTP server.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	newView  func() view.View
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl of inactivity.
// Parameters:
//   - ttl: idle time after which Sweep drops a session; <= 0 keeps sessions forever.
//   - newView: factory for the view of each new session.
// Returns:
//   - *SessionStore: empty store.
func NewSessionStore(ttl time.Duration, newView func() view.View) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		newView:  newView,
		now:      time.Now,
	}
}

// Create registers a new session.
func (st *SessionStore) Create() *Session {
	s := NewSession(st.newView())
	s.touch(st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with id and marks it active.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.touch(st.now())
	}
	return s, ok
}

// Delete removes a session, reporting whether it existed.
func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL.
// Returns:
//   - int: number of sessions removed.
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (st *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				logger.With(logger.Fields{logger.FieldCount: n}).Info(ctx, "Expired gallery sessions removed")
			}
		}
	}
}
