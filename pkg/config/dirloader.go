package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/imposterd/imposterd/pkg/util"
)

// DefaultDirPattern matches the configuration files LoadFromDir picks up,
// recursively.
const DefaultDirPattern = "**/*.{yaml,yml,json}"

// LoadFromDir loads and merges every configuration file under dir matching
// the pattern (DefaultDirPattern when empty). The pattern must stay relative
// to dir: absolute patterns and traversal out of it are rejected. Files merge
// in lexical path order, so imposter definitions from earlier paths come
// first.
func LoadFromDir(dir, pattern string) (*Collection, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	if pattern == "" {
		pattern = DefaultDirPattern
	}
	// The pattern stays relative to dir; a traversal like "../**" must not
	// pick up files outside it.
	cleaned, ok := util.SafeFilePath(pattern)
	if !ok {
		return nil, fmt.Errorf("%w: pattern %s", ErrUnsafePath, pattern)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, cleaned))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)

	merged := &Collection{}
	for _, path := range matches {
		c, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		merged.Merge(c)
	}
	return merged, nil
}
