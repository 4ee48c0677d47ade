package resolver

import (
	"context"
	"sync"

	"github.com/imposterd/imposterd/pkg/logging"
)

// Request is a captured inbound message as seen by the matching logic.
type Request struct {
	// RequestFrom identifies the originating peer as address:port.
	RequestFrom string `json:"requestFrom"`
	// Data is the payload decoded as text.
	Data string `json:"data"`
}

// RawResponse is a resolver's possibly partial response. An empty Data is
// filled with the imposter's default payload during post-processing.
type RawResponse struct {
	Data string `json:"data"`
}

// Resolver produces a raw response for a captured request.
type Resolver interface {
	Resolve(ctx context.Context, req *Request, logger *logging.Scoped) (*RawResponse, error)
}

// State is the imposter's opaque mutable mapping, shared across requests for
// the imposter's lifetime. Inject expressions read and write it.
type State struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// NewState creates an empty state mapping.
func NewState() *State {
	return &State{values: make(map[string]interface{})}
}

// Get returns the value for a key.
func (s *State) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value under a key.
func (s *State) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Snapshot returns a shallow copy of the mapping.
func (s *State) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// merge stores every key from values. Used to apply the state updates an
// inject expression returns.
func (s *State) merge(values map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
}

// Len returns the number of stored keys.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
