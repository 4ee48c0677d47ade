package protocol

import (
	"context"
	"time"
)

// Handler is the base interface that all imposter implementations satisfy.
// It provides the universal contract for identification and lifecycle
// management, regardless of the protocol being faked.
type Handler interface {
	// Metadata returns descriptive information about the imposter.
	Metadata() Metadata

	// Start activates the imposter. For standalone servers this binds the
	// listening socket; the actual port is available from the
	// StandaloneServer interface afterwards. The context can be used for
	// cancellation during startup.
	Start(ctx context.Context) error

	// Stop shuts the imposter down. Implementations should stop accepting
	// new connections, close active ones, and release the socket within
	// the timeout. Stop is idempotent.
	Stop(ctx context.Context, timeout time.Duration) error

	// Health returns the current health status of the imposter.
	Health(ctx context.Context) HealthStatus
}

// Metadata provides descriptive information about an imposter.
type Metadata struct {
	// ID is the unique identifier for this imposter instance.
	ID string `json:"id"`

	// Name is a human-readable label. Optional; supplied at creation.
	Name string `json:"name,omitempty"`

	// Protocol identifies the protocol type (tcp, ...).
	Protocol Protocol `json:"protocol"`

	// Capabilities lists the features this imposter supports.
	Capabilities []Capability `json:"capabilities"`
}

// HasCapability returns true if the metadata includes the given capability.
func (m Metadata) HasCapability(cap Capability) bool {
	for _, c := range m.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// HealthStatus represents the health of an imposter.
type HealthStatus struct {
	// Status is the overall health state.
	Status HealthState `json:"status"`

	// Message provides additional context about the health status.
	Message string `json:"message,omitempty"`

	// CheckedAt is when the health check was performed.
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthState is the health status enum.
type HealthState string

// Health states.
const (
	// HealthHealthy indicates the imposter is accepting connections.
	HealthHealthy HealthState = "healthy"

	// HealthUnhealthy indicates the imposter is not operational.
	HealthUnhealthy HealthState = "unhealthy"

	// HealthUnknown indicates the health status cannot be determined.
	HealthUnknown HealthState = "unknown"
)

// String returns the string representation of the health state.
func (h HealthState) String() string {
	return string(h)
}
