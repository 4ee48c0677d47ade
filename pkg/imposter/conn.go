package imposter

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/imposterd/imposterd/pkg/metrics"
	"github.com/imposterd/imposterd/pkg/protocol"
	"github.com/imposterd/imposterd/pkg/requestlog"
	"github.com/imposterd/imposterd/pkg/resolver"
	"github.com/imposterd/imposterd/pkg/util"
)

// readBufferSize caps a single request read. One read is one request.
const readBufferSize = 64 * 1024

// trackedConn pairs a client socket with its bookkeeping.
type trackedConn struct {
	id            string
	conn          net.Conn
	connectedAt   time.Time
	bytesReceived atomic.Int64
	bytesSent     atomic.Int64
}

func (tc *trackedConn) info() protocol.ConnectionInfo {
	return protocol.ConnectionInfo{
		ID:            tc.id,
		RemoteAddr:    tc.conn.RemoteAddr().String(),
		ConnectedAt:   tc.connectedAt,
		BytesSent:     tc.bytesSent.Load(),
		BytesReceived: tc.bytesReceived.Load(),
	}
}

// acceptLoop accepts connections until the listener is closed.
func (imp *Imposter) acceptLoop(listener net.Listener) {
	defer imp.wg.Done()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			imp.mu.RLock()
			closed := imp.closed
			imp.mu.RUnlock()
			if closed {
				return
			}
			imp.log.Warn("accept failed", "error", err)
			continue
		}

		tc := &trackedConn{
			id:          uuid.NewString(),
			conn:        conn,
			connectedAt: time.Now(),
		}
		imp.connMu.Lock()
		imp.conns[tc.id] = tc
		imp.connMu.Unlock()

		if vec, err := metrics.ActiveConnections.WithLabels(protocol.ProtocolTCP.String()); err == nil {
			vec.Inc()
		}

		imp.wg.Add(1)
		go imp.handleConn(tc)
	}
}

// handleConn reads requests off one connection until it closes. Each read
// is one request: capture, resolve, normalize, reply. A resolution failure
// is logged and terminates this connection only; the listener and other
// connections are unaffected.
func (imp *Imposter) handleConn(tc *trackedConn) {
	defer imp.wg.Done()
	defer func() {
		_ = tc.conn.Close()
		imp.connMu.Lock()
		delete(imp.conns, tc.id)
		imp.connMu.Unlock()
		if vec, err := metrics.ActiveConnections.WithLabels(protocol.ProtocolTCP.String()); err == nil {
			vec.Dec()
		}
	}()

	remote := tc.conn.RemoteAddr().String()
	imp.log.Debug("connection opened", "remote", remote, "conn", tc.id)

	buf := make([]byte, readBufferSize)
	for {
		n, err := tc.conn.Read(buf)
		if err != nil {
			imp.log.Debug("connection closed", "remote", remote, "conn", tc.id)
			return
		}
		tc.bytesReceived.Add(int64(n))
		imp.bytesReceived.Add(int64(n))

		req := &resolver.Request{
			RequestFrom: remote,
			Data:        decodePayload(imp.cfg.mode(), buf[:n]),
		}
		imp.captureRequest(req)

		raw, err := imp.res.Resolve(context.Background(), req, imp.log)
		if err != nil {
			imp.errorCount.Add(1)
			imp.countError("resolve")
			imp.log.Error("resolution failed, closing connection",
				"remote", remote, "error", err,
				"data", util.TruncateBody(req.Data, 256))
			return
		}

		resp := normalize(raw, imp.cfg.DefaultResponse)
		out := encodePayload(imp.cfg.mode(), resp.Data)
		written, err := tc.conn.Write(out)
		if err != nil {
			imp.errorCount.Add(1)
			imp.countError("write")
			imp.log.Debug("write failed", "remote", remote, "error", err)
			return
		}
		tc.bytesSent.Add(int64(written))
		imp.bytesSent.Add(int64(written))
	}
}

// captureRequest counts the request and, when recording is enabled, appends
// an independent copy to the history.
func (imp *Imposter) captureRequest(req *resolver.Request) {
	imp.requestCount.Add(1)

	if vec, err := metrics.RequestsTotal.WithLabels(protocol.ProtocolTCP.String(), strconv.Itoa(imp.Port())); err == nil {
		_ = vec.Inc()
	}

	if imp.store == nil {
		return
	}
	imp.store.Log(&requestlog.Entry{
		ID:          uuid.NewString(),
		Protocol:    requestlog.ProtocolTCP,
		RequestFrom: req.RequestFrom,
		Data:        req.Data,
		Timestamp:   time.Now(),
	})
}

func (imp *Imposter) countError(kind string) {
	if vec, err := metrics.ErrorsTotal.WithLabels(protocol.ProtocolTCP.String(), kind); err == nil {
		_ = vec.Inc()
	}
}
