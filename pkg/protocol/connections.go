package protocol

import "time"

// ConnectionManager handlers maintain persistent connections.
// A TCP imposter keeps client sockets open across requests, so it tracks
// every accepted connection until the peer or the imposter closes it.
type ConnectionManager interface {
	// ConnectionCount returns the number of active connections.
	ConnectionCount() int

	// ListConnections returns information about all active connections.
	ListConnections() []ConnectionInfo

	// CloseAllConnections closes all connections.
	// Returns the number of connections that were closed.
	CloseAllConnections() int
}

// ConnectionInfo provides information about a single client connection.
type ConnectionInfo struct {
	// ID is the unique identifier for this connection.
	ID string `json:"id"`

	// RemoteAddr is the client's network address (address:port).
	RemoteAddr string `json:"remoteAddr"`

	// ConnectedAt is when the connection was established.
	ConnectedAt time.Time `json:"connectedAt"`

	// BytesSent is the total bytes sent to this client.
	BytesSent int64 `json:"bytesSent"`

	// BytesReceived is the total bytes received from this client.
	BytesReceived int64 `json:"bytesReceived"`
}
