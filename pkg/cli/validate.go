package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imposterd/imposterd/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate configuration files without starting anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed bool
		for _, path := range args {
			c, err := config.LoadFromFile(path)
			if err != nil {
				failed = true
				fmt.Printf("✗ %s: %v\n", path, err)
				continue
			}
			fmt.Printf("✓ %s: %d imposter(s)\n", path, len(c.Imposters))
		}
		if failed {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
