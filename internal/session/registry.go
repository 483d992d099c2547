// Package session maps browser sessions to their schedule stores. Each
// session owns exactly one store, created on first contact and dropped
// after the idle TTL; no state survives beyond that.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"horario/internal/schedule"
)

// CookieName is the session cookie the HTTP layer uses.
const CookieName = "horario_session"

type entry struct {
	svc      *schedule.Service
	lastSeen time.Time
}

// Registry hands out per-session schedule services keyed by opaque IDs.
// Expired sessions are swept lazily on access; there is no background
// goroutine.
type Registry struct {
	mu         sync.Mutex
	ttl        time.Duration
	now        func() time.Time
	newService func() *schedule.Service
	sessions   map[string]*entry
}

// NewRegistry creates a registry. newService is invoked once per fresh
// session to build its seeded service.
func NewRegistry(ttl time.Duration, newService func() *schedule.Service) *Registry {
	return &Registry{
		ttl:        ttl,
		now:        time.Now,
		newService: newService,
		sessions:   make(map[string]*entry),
	}
}

// Get returns the service for id, refreshing its idle timer. It reports
// false when the session is unknown or has expired.
func (r *Registry) Get(id string) (*schedule.Service, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.svc, true
}

// Create registers a fresh session and returns its ID and service.
func (r *Registry) Create() (string, *schedule.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	id := uuid.NewString()
	svc := r.newService()
	r.sessions[id] = &entry{svc: svc, lastSeen: now}
	return id, svc
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep(r.now())
	return len(r.sessions)
}

// sweep drops sessions idle for longer than the TTL. Caller must hold mu.
func (r *Registry) sweep(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
