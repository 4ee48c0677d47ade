package protocol

// Protocol identifies the protocol type of an imposter.
type Protocol string

// Supported and planned protocols.
const (
	// ProtocolTCP is the raw stream-socket imposter.
	ProtocolTCP Protocol = "tcp"

	// Future protocols
	ProtocolHTTP Protocol = "http"
	ProtocolUDP  Protocol = "udp"
)

// String returns the string representation of the protocol.
func (p Protocol) String() string {
	return string(p)
}

// Capability identifies optional features an imposter supports.
// Use Metadata.HasCapability() to check without type assertions.
type Capability string

// Capability constants.
const (
	// CapabilityMocking means the imposter serves canned stub responses.
	CapabilityMocking Capability = "mocking"

	// CapabilityMatching means stub selection uses predicate matching.
	CapabilityMatching Capability = "matching"

	// CapabilityProxying means stubs can forward traffic to an upstream.
	CapabilityProxying Capability = "proxying"

	// CapabilityInjection means stubs can compute responses from expressions.
	CapabilityInjection Capability = "injection"

	// CapabilityRecording means the imposter can retain request history.
	CapabilityRecording Capability = "recording"

	// CapabilityConnections means the imposter tracks persistent connections.
	CapabilityConnections Capability = "connections"
)

// String returns the string representation of the capability.
func (c Capability) String() string {
	return string(c)
}

// Mode describes how an imposter interprets payload bytes.
type Mode string

// Payload modes.
const (
	// ModeText decodes payloads as UTF-8 text.
	ModeText Mode = "text"

	// ModeBinary records payloads base64-encoded and leaves the wire
	// bytes untouched.
	ModeBinary Mode = "binary"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}
