// Package logging provides structured logging configuration for imposterd.
//
// This package wraps log/slog to provide consistent logging across all
// imposterd components. It supports configurable log levels, output formats,
// and scoped loggers whose label tracks the imposter they belong to.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("imposter started", "port", 3535)
//
// # Scoped Loggers
//
// An imposter is created before its listening port is known (port 0 means
// "let the OS pick"). Scoped wraps a logger with a mutable scope label so the
// label can be rewritten once the real port is bound:
//
//	scoped := logging.NewScoped(logger, "tcp:0")
//	// ... after bind ...
//	scoped.ChangeScope("tcp:49732")
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via a
// setter. If no logger is provided, use logging.Nop() for a no-op logger.
package logging
