package booking

import (
	"sync"
	"time"

	"github.com/eastdocs/studioctl/internal/ids"
)

// DefaultSessionTTL is how long an idle wizard session survives before the
// sweeper discards it.
const DefaultSessionTTL = 2 * time.Hour

// Session pairs a wizard with its ULID reference and serializes access to
// it. The HTTP layer may touch one session from several requests at once.
type Session struct {
	ID string

	mu         sync.Mutex
	wizard     *Wizard
	lastActive time.Time
}

// With runs fn with exclusive access to the session's wizard and refreshes
// its idle timer.
func (s *Session) With(fn func(w *Wizard) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return fn(s.wizard)
}

// Registry is the in-memory wizard session table.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewRegistry builds an empty registry. ttl <= 0 selects the default.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a wizard under a fresh ULID and returns its session.
func (r *Registry) Create(w *Wizard) *Session {
	s := &Session{
		ID:         ids.MustNew(time.Now()),
		wizard:     w,
		lastActive: time.Now(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete discards a session. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// PruneExpired drops sessions idle longer than the registry TTL and returns
// how many were removed. The server calls this on a ticker.
func (r *Registry) PruneExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastActive)
		s.mu.Unlock()
		if idle > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
