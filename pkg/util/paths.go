package util

import (
	"path/filepath"
	"strings"
)

// SafeFilePath cleans a relative file path and rejects anything that could
// escape the working directory: absolute paths, backslash separators, and
// paths that still contain ".." after cleaning. Returns the cleaned path and
// whether it is safe to use.
func SafeFilePath(path string) (string, bool) {
	cleaned, ok := safePath(path)
	if !ok {
		return "", false
	}
	if filepath.IsAbs(cleaned) {
		return "", false
	}
	return cleaned, true
}

// SafeFilePathAllowAbsolute is like SafeFilePath but permits absolute paths.
// Traversal sequences that survive cleaning are still rejected.
func SafeFilePathAllowAbsolute(path string) (string, bool) {
	return safePath(path)
}

func safePath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if strings.Contains(path, `\`) {
		return "", false
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}
