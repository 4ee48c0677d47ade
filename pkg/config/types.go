package config

import (
	"github.com/imposterd/imposterd/pkg/imposter"
)

// Collection is the top-level structure of a configuration file.
type Collection struct {
	// Version of the configuration format. Optional.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Imposters to create at startup.
	Imposters []imposter.Config `json:"imposters" yaml:"imposters" validate:"dive"`
}

// Merge appends the imposters of other into the collection.
func (c *Collection) Merge(other *Collection) {
	if other == nil {
		return
	}
	c.Imposters = append(c.Imposters, other.Imposters...)
}
