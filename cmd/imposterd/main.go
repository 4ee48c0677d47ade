// imposterd - daemon serving TCP virtual services for tests.
package main

import (
	"fmt"
	"os"

	"github.com/imposterd/imposterd/pkg/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if Version != "dev" {
		cli.Version = Version
	}
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
