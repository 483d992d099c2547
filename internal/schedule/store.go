package schedule

import "sync"

// Store holds one session's activities in insertion order. It is the only
// mutable state in the system; everything rendered is derived from it.
//
// The HTTP handlers and the MCP transport can hit the same store
// concurrently, so access is guarded even though each store belongs to a
// single session.
type Store struct {
	mu   sync.RWMutex
	acts []Activity
}

// NewStore creates a store pre-populated with seed. The seed gives a
// non-empty first render; pass nil to start empty.
func NewStore(seed []Activity) *Store {
	s := &Store{}
	if len(seed) > 0 {
		s.acts = make([]Activity, len(seed))
		copy(s.acts, seed)
	}
	return s
}

// DefaultSeed returns the example activities a fresh schedule starts with.
func DefaultSeed() []Activity {
	return []Activity{
		{Day: "Lunes", Title: "PLE B1", Start: TimeOfDay{Hour: 9}, End: TimeOfDay{Hour: 11}, Location: "Aula 3"},
		{Day: "Martes", Title: "Reunión equipo", Start: TimeOfDay{Hour: 15}, End: TimeOfDay{Hour: 16}, Location: "Zoom"},
		{Day: "Viernes", Title: "Oficina PLE", Start: TimeOfDay{Hour: 10, Minute: 30}, End: TimeOfDay{Hour: 12}, Location: "IGR Lima"},
	}
}

// Add appends an activity, preserving insertion order. Duplicates are
// allowed. Returns ErrInvalidRange when the activity does not end strictly
// after it starts; the store is left unchanged in that case.
func (s *Store) Add(a Activity) error {
	if !a.End.After(a.Start) {
		return ErrInvalidRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acts = append(s.acts, a)
	return nil
}

// Clear empties the store unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acts = nil
}

// Replace swaps the full collection, validating every entry first. Used by
// the JSON import path; on error the store is left unchanged.
func (s *Store) Replace(acts []Activity) error {
	for _, a := range acts {
		if !a.End.After(a.Start) {
			return ErrInvalidRange
		}
	}
	next := make([]Activity, len(acts))
	copy(next, acts)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acts = next
	return nil
}

// List returns a snapshot of the current activities in insertion order.
// The returned slice is a copy; mutating it does not affect the store.
func (s *Store) List() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Activity, len(s.acts))
	copy(out, s.acts)
	return out
}

// Len returns the number of stored activities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.acts)
}
