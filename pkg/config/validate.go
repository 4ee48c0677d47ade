package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a collection: struct tags first, then each imposter's own
// stub validation, then cross-imposter constraints (no duplicate explicit
// ports — two imposters cannot bind the same port).
func Validate(c *Collection) error {
	if c == nil {
		return fmt.Errorf("collection cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seen := make(map[int]int)
	for i := range c.Imposters {
		cfg := &c.Imposters[i]
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("imposter %d: %w", i, err)
		}
		if cfg.Port == 0 {
			continue
		}
		if prev, dup := seen[cfg.Port]; dup {
			return fmt.Errorf("imposters %d and %d both request port %d", prev, i, cfg.Port)
		}
		seen[cfg.Port] = i
	}
	return nil
}
