package imposter

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/netutil"

	"github.com/imposterd/imposterd/pkg/logging"
	"github.com/imposterd/imposterd/pkg/metrics"
	"github.com/imposterd/imposterd/pkg/protocol"
	"github.com/imposterd/imposterd/pkg/requestlog"
	"github.com/imposterd/imposterd/pkg/resolver"
	"github.com/imposterd/imposterd/pkg/stub"
)

// DefaultStopTimeout bounds how long Close waits for in-flight connections.
const DefaultStopTimeout = 5 * time.Second

// Deps are the collaborators an imposter is wired with. Zero values get
// sensible defaults: a no-op logger and a StubResolver over the imposter's
// own stub repository.
type Deps struct {
	// Logger receives operational log records. Nil means no logging.
	Logger *slog.Logger

	// Resolver overrides the response resolution strategy. Nil wires a
	// StubResolver over the imposter's stub repository and state.
	Resolver resolver.Resolver
}

// Imposter is a single running TCP virtual service. It implements the
// protocol.Handler contracts and is registered in the protocol.Registry
// under its ID.
type Imposter struct {
	cfg Config
	id  string

	log   *logging.Scoped
	stubs *stub.Repository
	state *resolver.State
	res   resolver.Resolver
	store requestlog.Store

	requestCount  atomic.Int64
	errorCount    atomic.Int64
	bytesReceived atomic.Int64
	bytesSent     atomic.Int64

	mu        sync.RWMutex
	running   bool
	closed    bool
	startedAt time.Time
	listener  net.Listener

	connMu sync.Mutex
	conns  map[string]*trackedConn

	wg sync.WaitGroup
}

// New builds an imposter from its config without binding the socket.
// Callers normally use Create instead.
func New(cfg Config, deps Deps) (*Imposter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("imposter config: %w", err)
	}

	imp := &Imposter{
		cfg:   cfg,
		id:    uuid.NewString(),
		log:   logging.NewScoped(deps.Logger, scopeLabel(cfg.Port)),
		stubs: stub.NewRepository(cfg.Debug),
		state: resolver.NewState(),
		conns: make(map[string]*trackedConn),
	}
	for _, s := range cfg.Stubs {
		imp.stubs.Add(s)
	}

	if deps.Resolver != nil {
		imp.res = deps.Resolver
	} else {
		imp.res = resolver.NewStubResolver(imp.stubs, imp.state)
	}

	if cfg.RecordRequests {
		imp.store = requestlog.NewMemoryStore(cfg.MaxRecordedRequests)
	}

	metrics.Init()
	return imp, nil
}

// Create builds and starts an imposter in one call. On success the returned
// handle is listening and Port() reports the actual bound port; on bind
// failure no handle is returned and the error names the attempted port.
func Create(ctx context.Context, cfg Config, deps Deps) (*Imposter, error) {
	imp, err := New(cfg, deps)
	if err != nil {
		return nil, err
	}
	if err := imp.Start(ctx); err != nil {
		return nil, err
	}
	return imp, nil
}

// Start binds the socket and launches the accept loop. When the config
// requested port 0, the logger scope is rewritten to the OS-assigned port
// so operators see the port clients actually connect to.
func (imp *Imposter) Start(ctx context.Context) error {
	imp.mu.Lock()
	defer imp.mu.Unlock()

	if imp.closed {
		return protocol.ErrShutdown
	}
	if imp.running {
		return protocol.ErrAlreadyRunning
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", imp.cfg.Port))
	if err != nil {
		return fmt.Errorf("bind tcp port %d: %w", imp.cfg.Port, err)
	}
	if imp.cfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, imp.cfg.MaxConnections)
	}
	imp.listener = listener
	imp.running = true
	imp.startedAt = time.Now()

	actual := listener.Addr().(*net.TCPAddr).Port
	if actual != imp.cfg.Port {
		imp.log.ChangeScope(scopeLabel(actual))
	}

	if vec, err := metrics.ImpostersRunning.WithLabels(protocol.ProtocolTCP.String()); err == nil {
		vec.Inc()
	}

	imp.wg.Add(1)
	go imp.acceptLoop(listener)

	imp.log.Info("imposter started", "port", actual, "name", imp.cfg.Name)
	return nil
}

// Stop stops accepting connections, closes active ones, and releases the
// socket. It waits up to timeout for connection handlers to finish.
// Stopping an imposter that never started, or one already stopped, is a
// no-op.
func (imp *Imposter) Stop(ctx context.Context, timeout time.Duration) error {
	imp.mu.Lock()
	if imp.closed {
		imp.mu.Unlock()
		return nil
	}
	imp.closed = true
	wasRunning := imp.running
	imp.running = false
	listener := imp.listener
	imp.mu.Unlock()

	if !wasRunning {
		return nil
	}

	if listener != nil {
		_ = listener.Close()
	}
	imp.CloseAllConnections()

	done := make(chan struct{})
	go func() {
		imp.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		imp.log.Warn("stop timed out waiting for connections")
	case <-ctx.Done():
	}

	if vec, err := metrics.ImpostersRunning.WithLabels(protocol.ProtocolTCP.String()); err == nil {
		vec.Dec()
	}

	imp.log.Info("imposter stopped")
	return nil
}

// Close shuts the imposter down with the default timeout. Idempotent:
// calling it again has no effect and returns nil.
func (imp *Imposter) Close() error {
	return imp.Stop(context.Background(), DefaultStopTimeout)
}

// Port returns the actual bound port, or 0 before the first successful
// Start. After Stop the last bound port is still reported, so the handle
// stays inspectable after teardown.
func (imp *Imposter) Port() int {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	if imp.listener == nil {
		return 0
	}
	if addr, ok := imp.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Address returns the full listen address, or "" if not running.
func (imp *Imposter) Address() string {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	if !imp.running || imp.listener == nil {
		return ""
	}
	return imp.listener.Addr().String()
}

// IsRunning returns true while the imposter is listening.
func (imp *Imposter) IsRunning() bool {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	return imp.running
}

// ID returns the imposter's unique identifier.
func (imp *Imposter) ID() string {
	return imp.id
}

// Name returns the optional label supplied at creation.
func (imp *Imposter) Name() string {
	return imp.cfg.Name
}

// NumberOfRequests returns the total number of inbound requests seen,
// counted whether or not recording is enabled.
func (imp *Imposter) NumberOfRequests() int64 {
	return imp.requestCount.Load()
}

// Requests returns the recorded request history in arrival order: every
// request since creation, unless MaxRecordedRequests opted into a cap.
// Empty unless the imposter was created with RecordRequests.
func (imp *Imposter) Requests() []*requestlog.Entry {
	if imp.store == nil {
		return nil
	}
	return imp.store.List()
}

// AddStub validates and appends a stub to the repository.
func (imp *Imposter) AddStub(s *stub.Stub) error {
	if s == nil {
		return fmt.Errorf("stub cannot be nil")
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("add stub: %w", err)
	}
	imp.stubs.Add(s)
	return nil
}

// Stubs returns the configured stubs in insertion order.
func (imp *Imposter) Stubs() []*stub.Stub {
	return imp.stubs.All()
}

// StubRepository exposes the repository itself, for diagnostics access.
func (imp *Imposter) StubRepository() *stub.Repository {
	return imp.stubs
}

// State returns the imposter's opaque mutable mapping, shared with inject
// expressions for the imposter's lifetime.
func (imp *Imposter) State() *resolver.State {
	return imp.state
}

// Metadata returns descriptive information about the imposter. Name is
// present only when supplied at creation.
func (imp *Imposter) Metadata() protocol.Metadata {
	return protocol.Metadata{
		ID:       imp.id,
		Name:     imp.cfg.Name,
		Protocol: protocol.ProtocolTCP,
		Capabilities: []protocol.Capability{
			protocol.CapabilityMocking,
			protocol.CapabilityMatching,
			protocol.CapabilityProxying,
			protocol.CapabilityInjection,
			protocol.CapabilityRecording,
			protocol.CapabilityConnections,
		},
	}
}

// Health reports healthy while the imposter is listening.
func (imp *Imposter) Health(ctx context.Context) protocol.HealthStatus {
	imp.mu.RLock()
	running := imp.running
	imp.mu.RUnlock()

	status := protocol.HealthUnhealthy
	if running {
		status = protocol.HealthHealthy
	}
	return protocol.HealthStatus{
		Status:    status,
		CheckedAt: time.Now(),
	}
}

// Stats returns operational metrics.
func (imp *Imposter) Stats() protocol.Stats {
	imp.mu.RLock()
	running := imp.running
	startedAt := imp.startedAt
	imp.mu.RUnlock()

	var uptime time.Duration
	if running && !startedAt.IsZero() {
		uptime = time.Since(startedAt)
	}
	return protocol.Stats{
		Running:       running,
		StartedAt:     startedAt,
		Uptime:        uptime,
		RequestCount:  imp.requestCount.Load(),
		ErrorCount:    imp.errorCount.Load(),
		BytesReceived: imp.bytesReceived.Load(),
		BytesSent:     imp.bytesSent.Load(),
	}
}

// SetLogger replaces the operational logger, keeping the current scope.
// Safe to call on a running imposter.
func (imp *Imposter) SetLogger(log *slog.Logger) {
	imp.log.SetLogger(log)
}

// IsRecordingEnabled reports whether request history is retained.
func (imp *Imposter) IsRecordingEnabled() bool {
	return imp.cfg.RecordRequests
}

// ConnectionCount returns the number of active client connections.
func (imp *Imposter) ConnectionCount() int {
	imp.connMu.Lock()
	defer imp.connMu.Unlock()
	return len(imp.conns)
}

// ListConnections returns information about all active connections.
func (imp *Imposter) ListConnections() []protocol.ConnectionInfo {
	imp.connMu.Lock()
	defer imp.connMu.Unlock()
	out := make([]protocol.ConnectionInfo, 0, len(imp.conns))
	for _, tc := range imp.conns {
		out = append(out, tc.info())
	}
	return out
}

// CloseAllConnections closes every active connection and returns how many
// were closed.
func (imp *Imposter) CloseAllConnections() int {
	imp.connMu.Lock()
	conns := make([]*trackedConn, 0, len(imp.conns))
	for _, tc := range imp.conns {
		conns = append(conns, tc)
	}
	imp.connMu.Unlock()

	for _, tc := range conns {
		_ = tc.conn.Close()
	}
	return len(conns)
}

func scopeLabel(port int) string {
	return "tcp:" + strconv.Itoa(port)
}

// Interface compliance.
var (
	_ protocol.Handler           = (*Imposter)(nil)
	_ protocol.StandaloneServer  = (*Imposter)(nil)
	_ protocol.Loggable          = (*Imposter)(nil)
	_ protocol.Observable        = (*Imposter)(nil)
	_ protocol.Recordable        = (*Imposter)(nil)
	_ protocol.ConnectionManager = (*Imposter)(nil)
)
