package protocol

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Registry manages running imposters and provides lifecycle management.
// It is thread-safe and can be used concurrently.
type Registry struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler to the registry.
// Returns an error if a handler with the same ID already exists.
func (r *Registry) Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}

	meta := h.Metadata()
	if meta.ID == "" {
		return ErrEmptyHandlerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[meta.ID]; exists {
		return fmt.Errorf("%w: %s", ErrHandlerExists, meta.ID)
	}

	r.handlers[meta.ID] = h
	return nil
}

// Unregister removes a handler from the registry.
// Returns an error if the handler is not found.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[id]; !exists {
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, id)
	}

	delete(r.handlers, id)
	return nil
}

// Get returns a handler by ID.
func (r *Registry) Get(id string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, exists := r.handlers[id]
	return h, exists
}

// GetByPort returns the running imposter bound to the given port.
// The port is how clients identify an imposter, so the Admin API resolves
// imposters through this lookup.
func (r *Registry) GetByPort(port int) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers {
		if srv, ok := h.(StandaloneServer); ok && srv.Port() == port {
			return h, true
		}
	}
	return nil, false
}

// List returns all registered handlers.
func (r *Registry) List() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	return handlers
}

// ListByProtocol returns all handlers of a specific protocol type.
func (r *Registry) ListByProtocol(proto Protocol) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var handlers []Handler
	for _, h := range r.handlers {
		if h.Metadata().Protocol == proto {
			handlers = append(handlers, h)
		}
	}
	return handlers
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// StartAll starts all registered handlers.
// Returns an error if any handler fails to start.
// Handlers are started in no particular order.
func (r *Registry) StartAll(ctx context.Context) error {
	for _, h := range r.snapshot() {
		if err := h.Start(ctx); err != nil {
			return fmt.Errorf("failed to start imposter %s: %w", h.Metadata().ID, err)
		}
	}
	return nil
}

// StopAll stops all registered handlers.
// Returns the first error encountered, after attempting to stop every
// handler. Handlers are stopped in no particular order.
func (r *Registry) StopAll(ctx context.Context, timeout time.Duration) error {
	var firstErr error
	for _, h := range r.snapshot() {
		if err := h.Stop(ctx, timeout); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to stop imposter %s: %w", h.Metadata().ID, err)
		}
	}
	return firstErr
}

// HealthAll returns the health status of all registered handlers,
// keyed by handler ID.
func (r *Registry) HealthAll(ctx context.Context) map[string]HealthStatus {
	handlers := r.snapshot()

	results := make(map[string]HealthStatus, len(handlers))
	for _, h := range handlers {
		results[h.Metadata().ID] = h.Health(ctx)
	}
	return results
}

// ForEach executes a function for each handler.
// Return false from the function to stop iteration.
func (r *Registry) ForEach(fn func(Handler) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers {
		if !fn(h) {
			break
		}
	}
}

// snapshot copies the handler list so lifecycle calls run without
// holding the registry lock.
func (r *Registry) snapshot() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	return handlers
}
