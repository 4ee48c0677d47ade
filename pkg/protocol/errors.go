package protocol

// Error is a simple error type for protocol errors.
// It allows defining sentinel errors as constants.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors for common imposter operations.
var (
	// ErrNilHandler is returned when attempting to register a nil handler.
	ErrNilHandler = Error("handler cannot be nil")

	// ErrEmptyHandlerID is returned when a handler has an empty ID.
	ErrEmptyHandlerID = Error("handler ID cannot be empty")

	// ErrHandlerExists is returned when registering a handler with an ID
	// that is already registered in the registry.
	ErrHandlerExists = Error("handler with this ID already exists")

	// ErrHandlerNotFound is returned when looking up a handler by ID or
	// port that is not registered in the registry.
	ErrHandlerNotFound = Error("handler not found")

	// ErrAlreadyRunning is returned when attempting to start an imposter
	// that is already running.
	ErrAlreadyRunning = Error("imposter is already running")

	// ErrNotRunning is returned when attempting an operation that needs
	// a running imposter.
	ErrNotRunning = Error("imposter is not running")

	// ErrShutdown is returned when an operation is attempted on an
	// imposter that is shutting down.
	ErrShutdown = Error("imposter is shutting down")
)
