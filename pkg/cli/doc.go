// Package cli implements the imposterd command line interface.
//
// The serve command is the entry point for running the daemon: it loads the
// server settings and imposter configuration, starts every configured
// imposter plus the Admin API, and runs until SIGINT or SIGTERM. The
// validate command checks configuration files without binding any sockets.
package cli
