// Package protocol defines the interface contracts imposter implementations
// must satisfy to be managed by the imposterd runtime.
//
// This package establishes contracts that enable:
//   - Uniform lifecycle management of imposters (start, stop, health)
//   - Generic Admin API endpoints addressing imposters by port
//   - Capability-based feature detection via type assertions
//
// # Interface Hierarchy
//
// Handler is the base interface every imposter implements:
//
//	Handler (base)
//	├── StandaloneServer  - owns a listening socket on its own port
//	├── Loggable          - structured logging support
//	├── Observable        - operational metrics exposure
//	├── ConnectionManager - persistent connection management
//	└── Recordable        - request recording support
//
// # Registry Usage
//
// The Registry manages running imposters:
//
//	reg := protocol.NewRegistry()
//	if err := reg.Register(imp); err != nil { ... }
//	if err := reg.StartAll(ctx); err != nil { ... }
//
//	// Address an imposter the way clients do: by port.
//	imp, ok := reg.GetByPort(3535)
//
// # Capability Detection
//
// Use type assertions to detect optional capabilities:
//
//	if cm, ok := handler.(protocol.ConnectionManager); ok {
//	    fmt.Printf("active connections: %d\n", cm.ConnectionCount())
//	}
package protocol
