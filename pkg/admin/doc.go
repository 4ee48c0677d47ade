// Package admin provides the REST API for managing imposters.
//
// The API is how test harnesses drive imposterd: POST /imposters creates a
// virtual service and returns its actual port, GET endpoints expose the
// captured traffic for verification, DELETE tears the imposter down. All
// bodies are JSON. The /metrics endpoint serves the Prometheus text
// exposition of the default metrics registry.
package admin
