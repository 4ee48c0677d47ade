package stub

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is a thread-safe, ordered collection of stubs for one imposter.
// Stubs match first-wins in insertion order, and each stub serves its
// responses round-robin.
type Repository struct {
	mu    sync.RWMutex
	stubs []*Stub
	// next response index per stub ID, for round-robin selection
	next map[string]int
	// debug enables match diagnostics on each stub
	debug   bool
	matches map[string][]MatchRecord
}

// NewRepository creates an empty stub repository.
// With debug enabled, every successful match is recorded against its stub.
func NewRepository(debug bool) *Repository {
	return &Repository{
		next:    make(map[string]int),
		debug:   debug,
		matches: make(map[string][]MatchRecord),
	}
}

// Add appends a stub, assigning it a UUID if it has none.
func (r *Repository) Add(s *Stub) {
	if s == nil {
		return
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = append(r.stubs, s)
}

// All returns the stubs in insertion order. The slice is a copy; the stubs
// themselves are shared.
func (r *Repository) All() []*Stub {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Stub, len(r.stubs))
	copy(out, r.stubs)
	return out
}

// Count returns the number of stubs.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stubs)
}

// Clear removes all stubs and their round-robin and diagnostic state.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = nil
	r.next = make(map[string]int)
	r.matches = make(map[string][]MatchRecord)
}

// Match finds the first stub whose predicates all hold for the given request
// fields and advances its round-robin cursor. The returned ResponseConfig is
// nil when the matched stub has no responses, or when no stub matches at
// all; callers fall back to the imposter's default response in both cases.
func (r *Repository) Match(fields map[string]string) (*Stub, *ResponseConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stubs {
		if !allMatch(s.Predicates, fields) {
			continue
		}
		if r.debug {
			r.matches[s.ID] = append(r.matches[s.ID], MatchRecord{
				Timestamp:   time.Now(),
				RequestFrom: fields[FieldRequestFrom],
				Data:        fields[FieldData],
			})
		}
		if len(s.Responses) == 0 {
			return s, nil
		}
		idx := r.next[s.ID] % len(s.Responses)
		r.next[s.ID] = idx + 1
		return s, &s.Responses[idx]
	}
	return nil, nil
}

// Matches returns the recorded diagnostics for a stub. Empty unless the
// repository was created with debug enabled.
func (r *Repository) Matches(stubID string) []MatchRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := r.matches[stubID]
	out := make([]MatchRecord, len(recs))
	copy(out, recs)
	return out
}

func allMatch(predicates []Predicate, fields map[string]string) bool {
	for i := range predicates {
		if !predicates[i].Evaluate(fields) {
			return false
		}
	}
	return true
}
