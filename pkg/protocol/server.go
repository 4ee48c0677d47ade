package protocol

// StandaloneServer is a handler that owns its own listening socket.
// Every network imposter implements this; the port is how clients and the
// Admin API identify a running imposter.
type StandaloneServer interface {
	Handler

	// Port returns the port the imposter is listening on.
	// Returns 0 if the imposter is not running.
	Port() int

	// Address returns the full address the imposter is listening on,
	// e.g. "127.0.0.1:3535". Empty string if not running.
	Address() string

	// IsRunning returns true if the imposter is actively listening.
	IsRunning() bool
}
