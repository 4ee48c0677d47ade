package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imposterd/imposterd/pkg/util"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrUnsafePath       = errors.New("unsafe configuration path")
)

// LoadFromFile reads a Collection from a JSON or YAML file.
// The format is auto-detected from the extension (.yaml/.yml for YAML,
// otherwise JSON). The loaded collection is validated before it is returned.
func LoadFromFile(path string) (*Collection, error) {
	cleaned, ok := util.SafeFilePathAllowAbsolute(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, path)
	}

	info, err := os.Stat(cleaned)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, cleaned)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, cleaned)
		}
		return nil, fmt.Errorf("stat %s: %w", cleaned, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", cleaned)
	}

	data, err := os.ReadFile(cleaned)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, cleaned)
		}
		return nil, fmt.Errorf("read %s: %w", cleaned, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, cleaned)
	}

	ext := strings.ToLower(filepath.Ext(cleaned))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML parses and validates a YAML collection.
func ParseYAML(data []byte) (*Collection, error) {
	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseJSON parses and validates a JSON collection.
func ParseJSON(data []byte) (*Collection, error) {
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveToFile writes a Collection using an atomic rename, creating parent
// directories as needed. Format follows the file extension.
func SaveToFile(path string, c *Collection) error {
	if c == nil {
		return errors.New("collection cannot be nil")
	}

	ext := strings.ToLower(filepath.Ext(path))
	var data []byte
	var err error
	if ext == ".yaml" || ext == ".yml" {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	return nil
}
