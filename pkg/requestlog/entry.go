package requestlog

import "time"

// Protocol constants for request logging.
const (
	ProtocolTCP = "tcp"
)

// Entry captures a single inbound request for later inspection.
type Entry struct {
	// ID is a unique identifier for the log entry.
	ID string `json:"id,omitempty"`

	// Protocol identifies the protocol type (tcp).
	Protocol string `json:"protocol,omitempty"`

	// RequestFrom is the originating peer (address:port).
	RequestFrom string `json:"requestFrom"`

	// Data is the payload, decoded as UTF-8 text, or base64-encoded
	// for binary-mode imposters.
	Data string `json:"data"`

	// Timestamp is when the request was captured. Assigned once at
	// capture time and never updated.
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns an independent copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}
