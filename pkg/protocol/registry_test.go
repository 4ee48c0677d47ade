package protocol

import (
	"context"
	"testing"
	"time"
)

// fakeImposter is a minimal handler implementation for testing.
type fakeImposter struct {
	id          string
	proto       Protocol
	port        int
	running     bool
	started     bool
	stopped     bool
	startErr    error
	stopErr     error
	healthState HealthState
}

func (h *fakeImposter) Metadata() Metadata {
	return Metadata{
		ID:       h.id,
		Protocol: h.proto,
	}
}

func (h *fakeImposter) Start(ctx context.Context) error {
	h.started = true
	h.running = h.startErr == nil
	return h.startErr
}

func (h *fakeImposter) Stop(ctx context.Context, timeout time.Duration) error {
	h.stopped = true
	h.running = false
	return h.stopErr
}

func (h *fakeImposter) Health(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    h.healthState,
		CheckedAt: time.Now(),
	}
}

func (h *fakeImposter) Port() int       { return h.port }
func (h *fakeImposter) Address() string { return "" }
func (h *fakeImposter) IsRunning() bool { return h.running }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	h := &fakeImposter{id: "tcp-3535", proto: ProtocolTCP}
	err := r.Register(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Count() != 1 {
		t.Errorf("expected count 1, got %d", r.Count())
	}

	// Duplicate registration should fail
	err = r.Register(h)
	if err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_Register_NilHandler(t *testing.T) {
	r := NewRegistry()

	err := r.Register(nil)
	if err != ErrNilHandler {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
}

func TestRegistry_Register_EmptyID(t *testing.T) {
	r := NewRegistry()

	h := &fakeImposter{id: "", proto: ProtocolTCP}
	err := r.Register(h)
	if err != ErrEmptyHandlerID {
		t.Errorf("expected ErrEmptyHandlerID, got %v", err)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()

	h := &fakeImposter{id: "tcp-3535", proto: ProtocolTCP}
	_ = r.Register(h)

	err := r.Unregister("tcp-3535")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Count() != 0 {
		t.Errorf("expected count 0, got %d", r.Count())
	}

	// Unregister non-existent should fail
	err = r.Unregister("non-existent")
	if err == nil {
		t.Error("expected error for non-existent handler")
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	h := &fakeImposter{id: "tcp-3535", proto: ProtocolTCP}
	_ = r.Register(h)

	got, ok := r.Get("tcp-3535")
	if !ok {
		t.Error("expected handler to be found")
	}
	if got != h {
		t.Error("expected same handler instance")
	}

	_, ok = r.Get("non-existent")
	if ok {
		t.Error("expected handler not to be found")
	}
}

func TestRegistry_GetByPort(t *testing.T) {
	r := NewRegistry()

	h1 := &fakeImposter{id: "a", proto: ProtocolTCP, port: 3535}
	h2 := &fakeImposter{id: "b", proto: ProtocolTCP, port: 3536}
	_ = r.Register(h1)
	_ = r.Register(h2)

	got, ok := r.GetByPort(3536)
	if !ok {
		t.Fatal("expected imposter on port 3536 to be found")
	}
	if got != h2 {
		t.Error("expected same handler instance")
	}

	_, ok = r.GetByPort(9999)
	if ok {
		t.Error("expected no imposter on port 9999")
	}
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()

	h1 := &fakeImposter{id: "imposter-1", proto: ProtocolTCP}
	h2 := &fakeImposter{id: "imposter-2", proto: ProtocolTCP}
	_ = r.Register(h1)
	_ = r.Register(h2)

	handlers := r.List()
	if len(handlers) != 2 {
		t.Errorf("expected 2 handlers, got %d", len(handlers))
	}
}

func TestRegistry_ListByProtocol(t *testing.T) {
	r := NewRegistry()

	h1 := &fakeImposter{id: "tcp-1", proto: ProtocolTCP}
	h2 := &fakeImposter{id: "http-1", proto: ProtocolHTTP}
	h3 := &fakeImposter{id: "tcp-2", proto: ProtocolTCP}
	_ = r.Register(h1)
	_ = r.Register(h2)
	_ = r.Register(h3)

	tcp := r.ListByProtocol(ProtocolTCP)
	if len(tcp) != 2 {
		t.Errorf("expected 2 tcp handlers, got %d", len(tcp))
	}

	http := r.ListByProtocol(ProtocolHTTP)
	if len(http) != 1 {
		t.Errorf("expected 1 http handler, got %d", len(http))
	}
}

func TestRegistry_StartAll(t *testing.T) {
	r := NewRegistry()

	h1 := &fakeImposter{id: "imposter-1", healthState: HealthHealthy}
	h2 := &fakeImposter{id: "imposter-2", healthState: HealthHealthy}
	_ = r.Register(h1)
	_ = r.Register(h2)

	err := r.StartAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !h1.started || !h2.started {
		t.Error("expected all handlers to be started")
	}
}

func TestRegistry_StopAll(t *testing.T) {
	r := NewRegistry()

	h1 := &fakeImposter{id: "imposter-1"}
	h2 := &fakeImposter{id: "imposter-2"}
	_ = r.Register(h1)
	_ = r.Register(h2)

	err := r.StopAll(context.Background(), 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !h1.stopped || !h2.stopped {
		t.Error("expected all handlers to be stopped")
	}
}

func TestRegistry_HealthAll(t *testing.T) {
	r := NewRegistry()

	h1 := &fakeImposter{id: "imposter-1", healthState: HealthHealthy}
	h2 := &fakeImposter{id: "imposter-2", healthState: HealthUnhealthy}
	_ = r.Register(h1)
	_ = r.Register(h2)

	health := r.HealthAll(context.Background())
	if len(health) != 2 {
		t.Errorf("expected 2 health entries, got %d", len(health))
	}

	if health["imposter-1"].Status != HealthHealthy {
		t.Errorf("expected imposter-1 to be healthy, got %s", health["imposter-1"].Status)
	}
	if health["imposter-2"].Status != HealthUnhealthy {
		t.Errorf("expected imposter-2 to be unhealthy, got %s", health["imposter-2"].Status)
	}
}
