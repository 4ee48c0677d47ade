// Package config loads imposter definitions from JSON and YAML files.
//
// A configuration file holds a Collection of imposter configs, each with
// its port, options, and pre-configured stubs. Files can be loaded one at a
// time with LoadFromFile or merged from a directory tree with LoadFromDir,
// which supports ** glob patterns. Loaded collections are validated before
// use: structural checks via struct tags, stub checks via each config's own
// Validate.
package config
