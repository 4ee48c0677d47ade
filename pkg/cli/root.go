package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "imposterd",
	Short: "TCP virtual service daemon for test doubles",
	Long: `imposterd runs virtual network services ("imposters") for testing:
each imposter binds a TCP port, captures every request it receives, and
plays back configured stub responses. Captured traffic is exposed through
the Admin API for later verification.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
}

// Execute runs the CLI.
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}
