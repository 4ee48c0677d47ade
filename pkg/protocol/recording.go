package protocol

// Recordable handlers expose whether request history is being retained.
// For an imposter, recording is decided at creation time and holds for the
// imposter's whole lifetime; it is not toggleable afterwards.
type Recordable interface {
	// IsRecordingEnabled returns true if request history is retained.
	IsRecordingEnabled() bool
}
