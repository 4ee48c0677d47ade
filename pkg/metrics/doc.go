// Package metrics provides Prometheus-compatible metrics collection for
// imposterd.
//
// This package implements the Prometheus text exposition format (text/plain;
// version=0.0.4) without any external dependencies, using only the standard
// library.
//
// Supported metric types:
//   - Counter: monotonically increasing value (e.g., request counts)
//   - Gauge: value that can go up or down (e.g., active connections)
//
// All metrics are thread-safe and can be updated from multiple goroutines.
//
// # Default Metrics
//
//   - imposterd_requests_total: Counter for all imposter requests (labels: protocol, port)
//   - imposterd_errors_total: Counter for per-connection errors (labels: protocol, type)
//   - imposterd_active_connections: Gauge for open client connections (labels: protocol)
//   - imposterd_imposters_running: Gauge for running imposters (labels: protocol)
//
// # Usage
//
//	registry := metrics.Init()
//
//	metrics.RequestsTotal.WithLabels("tcp", "3535").Inc()
//	metrics.ActiveConnections.WithLabels("tcp").Inc()
//
//	// Register the /metrics endpoint
//	http.Handle("/metrics", registry.Handler())
//
// Custom metrics can also be created:
//
//	registry := metrics.NewRegistry()
//	counter := registry.NewCounter("my_counter", "Description of counter", "label1")
//	counter.WithLabels("value1").Inc()
package metrics
