package protocol

import (
	"log/slog"
	"time"
)

// Loggable handlers can receive a structured logger.
// This is for internal operational logging (debug, errors, etc.),
// not for the user-visible request history an imposter records.
type Loggable interface {
	// SetLogger sets the structured logger for the handler.
	SetLogger(log *slog.Logger)
}

// Observable handlers expose operational metrics. These are consumed by
// the Admin API stats endpoints.
type Observable interface {
	// Stats returns operational metrics for the handler.
	Stats() Stats
}

// Stats holds common operational metrics for an imposter.
type Stats struct {
	// Running indicates whether the imposter is currently listening.
	Running bool `json:"running"`

	// StartedAt is when the imposter was started.
	// Zero value if it has never been started.
	StartedAt time.Time `json:"startedAt,omitempty"`

	// Uptime is the duration since the imposter was started.
	// Zero if not running.
	Uptime time.Duration `json:"uptime,omitempty"`

	// RequestCount is the total number of requests handled.
	RequestCount int64 `json:"requestCount,omitempty"`

	// ErrorCount is the total number of per-connection errors.
	ErrorCount int64 `json:"errorCount,omitempty"`

	// BytesReceived is the total bytes received from clients.
	BytesReceived int64 `json:"bytesReceived,omitempty"`

	// BytesSent is the total bytes sent to clients.
	BytesSent int64 `json:"bytesSent,omitempty"`
}
