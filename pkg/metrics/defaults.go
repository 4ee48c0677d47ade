package metrics

import (
	"sync"
)

// Default metrics for the imposter server.
// These are initialized by calling Init().
//
// # Label Conventions
//
// All label values are lowercase:
//
// ## protocol label values
//   - tcp, http, udp
//
// ## type label values (for ErrorsTotal)
//   - bind, read, resolve, write
var (
	// RequestsTotal counts the total number of captured requests.
	// Labels: protocol, port
	RequestsTotal *Counter

	// ErrorsTotal counts errors grouped by stage of the connection lifecycle.
	// Labels: protocol, type
	ErrorsTotal *Counter

	// ActiveConnections tracks the number of currently open connections.
	// Labels: protocol
	ActiveConnections *Gauge

	// ImpostersRunning tracks the number of imposters currently listening.
	// Labels: protocol
	ImpostersRunning *Gauge
)

var (
	defaultRegistry *Registry
	initOnce        sync.Once
)

// Init initializes the default metrics and registry.
// It is safe to call multiple times; only the first call has effect.
func Init() {
	initOnce.Do(initMetrics)
}

func initMetrics() {
	defaultRegistry = NewRegistry()

	RequestsTotal = defaultRegistry.NewCounter(
		"imposterd_requests_total",
		"Total number of requests captured by imposters",
		"protocol", "port",
	)

	ErrorsTotal = defaultRegistry.NewCounter(
		"imposterd_errors_total",
		"Total number of imposter errors by lifecycle stage",
		"protocol", "type",
	)

	ActiveConnections = defaultRegistry.NewGauge(
		"imposterd_active_connections",
		"Number of currently open client connections",
		"protocol",
	)

	ImpostersRunning = defaultRegistry.NewGauge(
		"imposterd_imposters_running",
		"Number of imposters currently listening",
		"protocol",
	)
}

// DefaultRegistry returns the default metric registry.
// It initializes the registry if not already done.
func DefaultRegistry() *Registry {
	Init()
	return defaultRegistry
}

// Reset reinitializes the default registry and metrics.
// Only intended for tests.
func Reset() {
	initOnce = sync.Once{}
	Init()
}
