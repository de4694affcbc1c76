package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/timmy/pixgallery/internal/view"
)

// Session is the state of one gallery: the active search term, the page
// counter and the view results are rendered into.
//
// The page counter has two transitions, reset (to 1) and increment, with no
// bounds checking. The gallery flow decides when to stop requesting pages.
type Session struct {
	ID string

	mu         sync.Mutex // serializes the gallery flow on this session
	term       string
	page       int
	totalHits  int
	exhausted  bool // the last fetch matched nothing
	view       view.View
	lastActive atomic.Int64
}

// NewSession creates a session rendering into v with the counter at 1.
// Parameters:
//   - v: view the gallery flow mutates.
// Returns:
//   - *Session: session with a fresh UUID.
func NewSession(v view.View) *Session {
	s := &Session{
		ID:   uuid.New().String(),
		page: 1,
		view: v,
	}
	s.touch(time.Now())
	return s
}

// CurrentPage returns the page the next fetch will request.
func (s *Session) CurrentPage() int { return s.page }

// ResetPage sets the counter back to 1. Idempotent.
func (s *Session) ResetPage() { s.page = 1 }

// NextPage advances the counter after a successful fetch.
func (s *Session) NextPage() { s.page++ }

// Term returns the active search term.
func (s *Session) Term() string { return s.term }

// Snapshot returns the serializable view state when the view is a page.
// Parameters: none.
// Returns:
//   - view.Snapshot: current state.
//   - bool: false when the view cannot be snapshotted.
func (s *Session) Snapshot() (view.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.view.(*view.Page)
	if !ok {
		return view.Snapshot{}, false
	}
	return p.Snapshot(), true
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastActive.Load()))
}
