package requestlog

import "sync"

// Logger is the minimal interface for logging request entries.
// Imposters accept this interface to record requests, so they work with any
// implementation that can retain entries: an in-memory store, a persistent
// database, or a forwarder to a remote admin.
type Logger interface {
	Log(entry *Entry)
}

// Store defines the interface for request history storage.
// Store embeds Logger, so any Store implementation can be used where Logger
// is expected.
type Store interface {
	Logger

	// List returns all log entries in arrival order.
	List() []*Entry

	// Count returns the number of log entries.
	Count() int

	// Clear removes all log entries.
	Clear()
}

// MemoryStore is a thread-safe, append-only in-memory Store.
// Entries are retained in arrival order. A maxEntries of 0 means unbounded;
// otherwise the oldest entries are evicted once the cap is reached.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    []*Entry
	maxEntries int
}

// NewMemoryStore creates a MemoryStore holding at most maxEntries entries
// (0 = unbounded).
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{maxEntries: maxEntries}
}

// Log appends an entry. A clone is stored, so callers may reuse the
// entry object afterwards without rewriting history.
func (s *MemoryStore) Log(entry *Entry) {
	if entry == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry.Clone())
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.entries = s.entries[len(s.entries)-s.maxEntries:]
	}
}

// List returns all entries in arrival order. The returned slice is a copy;
// mutating it does not affect the store.
func (s *MemoryStore) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of stored entries.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
