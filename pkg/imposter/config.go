package imposter

import (
	"fmt"

	"github.com/imposterd/imposterd/pkg/protocol"
	"github.com/imposterd/imposterd/pkg/stub"
)

// Config describes a single imposter.
type Config struct {
	// Port to bind. 0 requests an OS-assigned ephemeral port; the actual
	// port is available from the handle after creation.
	Port int `json:"port" yaml:"port" validate:"min=0,max=65535"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Mode selects payload handling: text (UTF-8, the default) or binary
	// (payloads recorded base64-encoded).
	Mode protocol.Mode `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=text binary"`

	// RecordRequests retains every captured request for later inspection.
	// Decided at creation time for the imposter's whole lifetime.
	RecordRequests bool `json:"recordRequests,omitempty" yaml:"recordRequests,omitempty"`

	// Debug enables match diagnostics on the stub repository.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`

	// DefaultResponse is the payload substituted when a resolver response
	// carries no data. Empty by default.
	DefaultResponse string `json:"defaultResponse,omitempty" yaml:"defaultResponse,omitempty"`

	// MaxConnections caps concurrent client connections. 0 means no limit.
	MaxConnections int `json:"maxConnections,omitempty" yaml:"maxConnections,omitempty" validate:"min=0"`

	// MaxRecordedRequests caps the retained history. 0, the default, keeps
	// every request for the imposter's lifetime. Setting a cap trades the
	// full history for bounded memory: the oldest entries are evicted and
	// Requests() returns fewer entries than NumberOfRequests().
	MaxRecordedRequests int `json:"maxRecordedRequests,omitempty" yaml:"maxRecordedRequests,omitempty" validate:"min=0"`

	// Stubs configured ahead of creation. More can be added later via
	// AddStub.
	Stubs []*stub.Stub `json:"stubs,omitempty" yaml:"stubs,omitempty"`
}

// Validate checks the config and all its stubs.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Mode {
	case "", protocol.ModeText, protocol.ModeBinary:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	for i, s := range c.Stubs {
		if s == nil {
			return fmt.Errorf("stub %d is nil", i)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("stub %d: %w", i, err)
		}
	}
	return nil
}

// mode returns the effective payload mode, defaulting to text.
func (c *Config) mode() protocol.Mode {
	if c.Mode == "" {
		return protocol.ModeText
	}
	return c.Mode
}
