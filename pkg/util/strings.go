package util

// MaxLogBodySize is the default cap on payload bytes included in a log
// record (10KB).
const MaxLogBodySize = 10 * 1024

// TruncateBody caps a captured payload for log output. Payloads longer than
// maxSize bytes are cut and suffixed with "...(truncated)". A maxSize of 0
// or less falls back to MaxLogBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) <= maxSize {
		return data
	}
	return data[:maxSize] + "...(truncated)"
}
