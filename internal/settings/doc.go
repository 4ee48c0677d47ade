// Package settings loads server-level settings: log level and format, the
// Admin API port, and where to find imposter configuration. Values come
// from an optional YAML file overlaid with IMPOSTERD_* environment
// variables, on top of built-in defaults.
package settings
