// Package requestlog provides types and interfaces for capturing and storing
// inbound requests for later verification by test code.
//
// This package serves imposterd users who configure stubs ahead of time and
// then verify what traffic actually arrived. It is distinct from operational
// logging (which uses log/slog for platform debugging).
//
// # Core Types
//
// Entry is the central type representing a captured request: the peer that
// sent it, the decoded payload, and the capture timestamp. Entries are
// immutable once logged; the imposter clones the live request object before
// handing it to a Store, so later mutation never rewrites history.
//
// # Store Interface
//
// Store defines the interface for request history storage, supporting:
//   - Recording new entries in arrival order
//   - Listing and counting history
//   - Clearing history
//
// # Usage
//
//	store := requestlog.NewMemoryStore(0)
//	store.Log(&requestlog.Entry{
//	    RequestFrom: "127.0.0.1:52122",
//	    Data:        "ping",
//	    Timestamp:   time.Now(),
//	})
//
// # Package Design
//
// This is a leaf package with no internal dependencies, allowing it to be
// imported by any package without creating import cycles.
package requestlog
