package logging

import (
	"context"
	"log/slog"
	"sync"
)

// ScopeKey is the attribute key carrying the scope label on every record
// emitted through a Scoped logger.
const ScopeKey = "scope"

// Scoped is a logger with a mutable scope label. Every record emitted
// through it carries a "scope" attribute with the current label.
//
// The label can be rewritten after creation. This matters for imposters
// created on port 0: the scope starts as "tcp:0" and is changed to the
// OS-assigned port once the bind completes, so operators always see the
// port clients actually connect to.
type Scoped struct {
	logger *slog.Logger
	mu     sync.RWMutex
	scope  string
}

// NewScoped wraps logger with the given initial scope label.
// A nil logger is replaced with Nop().
func NewScoped(logger *slog.Logger, scope string) *Scoped {
	if logger == nil {
		logger = Nop()
	}
	return &Scoped{logger: logger, scope: scope}
}

// Scope returns the current scope label.
func (s *Scoped) Scope() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

// ChangeScope replaces the scope label. Safe for concurrent use.
func (s *Scoped) ChangeScope(scope string) {
	s.mu.Lock()
	s.scope = scope
	s.mu.Unlock()
}

// SetLogger replaces the underlying logger, keeping the scope label.
// A nil logger is replaced with Nop(). Safe for concurrent use, including
// while other goroutines are emitting records.
func (s *Scoped) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = Nop()
	}
	s.mu.Lock()
	s.logger = logger
	s.mu.Unlock()
}

// Logger returns the underlying slog.Logger without scope attribution.
func (s *Scoped) Logger() *slog.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logger
}

func (s *Scoped) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	s.mu.RLock()
	logger := s.logger
	scope := s.scope
	s.mu.RUnlock()

	if !logger.Enabled(ctx, level) {
		return
	}
	attrs := make([]any, 0, len(args)+2)
	attrs = append(attrs, ScopeKey, scope)
	attrs = append(attrs, args...)
	logger.Log(ctx, level, msg, attrs...)
}

// Debug logs at LevelDebug with the current scope attached.
func (s *Scoped) Debug(msg string, args ...any) {
	s.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs at LevelInfo with the current scope attached.
func (s *Scoped) Info(msg string, args ...any) {
	s.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs at LevelWarn with the current scope attached.
func (s *Scoped) Warn(msg string, args ...any) {
	s.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs at LevelError with the current scope attached.
func (s *Scoped) Error(msg string, args ...any) {
	s.log(context.Background(), slog.LevelError, msg, args...)
}
