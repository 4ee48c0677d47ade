// Package imposter implements the TCP virtual service at the heart of
// imposterd: bind a socket, accept connections, capture each inbound
// request, resolve a response through the stub resolver, and write the
// reply back to the caller.
//
// An Imposter is created in two phases: New builds the instance from its
// Config, Start performs the bind and launches the accept loop. Create
// combines both and is what callers normally use; it either returns a
// ready handle whose Port() reports the actual bound port, or a bind error
// naming the attempted port. No partial handle escapes a failed bind.
//
// The handle exposes the traffic record for later verification:
// NumberOfRequests counts every inbound request, Requests returns the
// retained history when recording was enabled at creation, and AddStub /
// Stubs manage the playback rules. Close is idempotent.
//
// Framing is deliberately simple: each socket read is treated as one
// complete request and triggers one resolve-and-reply cycle. Multi-packet
// messages are the caller's concern.
package imposter
