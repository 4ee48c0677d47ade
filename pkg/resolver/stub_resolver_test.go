package resolver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imposterd/imposterd/pkg/logging"
	"github.com/imposterd/imposterd/pkg/stub"
)

func newResolver(t *testing.T, stubs ...*stub.Stub) *StubResolver {
	t.Helper()
	repo := stub.NewRepository(false)
	for _, s := range stubs {
		repo.Add(s)
	}
	return NewStubResolver(repo, NewState())
}

func TestResolveIs(t *testing.T) {
	t.Parallel()

	r := newResolver(t, &stub.Stub{
		Predicates: []stub.Predicate{{Equals: map[string]string{"data": "ping"}}},
		Responses:  []stub.ResponseConfig{{Is: &stub.IsResponse{Data: "pong"}}},
	})

	resp, err := r.Resolve(context.Background(), &Request{Data: "ping", RequestFrom: "127.0.0.1:1"}, logging.NewScoped(nil, "test"))
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Data)
}

func TestResolveNoMatchReturnsEmpty(t *testing.T) {
	t.Parallel()

	r := newResolver(t, &stub.Stub{
		Predicates: []stub.Predicate{{Equals: map[string]string{"data": "ping"}}},
		Responses:  []stub.ResponseConfig{{Is: &stub.IsResponse{Data: "pong"}}},
	})

	resp, err := r.Resolve(context.Background(), &Request{Data: "other"}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestResolveStubWithoutResponses(t *testing.T) {
	t.Parallel()

	r := newResolver(t, &stub.Stub{ID: "bare"})

	resp, err := r.Resolve(context.Background(), &Request{Data: "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestResolveInject(t *testing.T) {
	t.Parallel()

	t.Run("string result", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t, &stub.Stub{
			Responses: []stub.ResponseConfig{{Inject: `"echo: " + request.data`}},
		})

		resp, err := r.Resolve(context.Background(), &Request{Data: "hello"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "echo: hello", resp.Data)
	})

	t.Run("map result with state update", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t, &stub.Stub{
			Responses: []stub.ResponseConfig{{
				Inject: `{"data": "seen", "state": {"last": request.data}}`,
			}},
		})

		_, err := r.Resolve(context.Background(), &Request{Data: "first"}, nil)
		require.NoError(t, err)

		last, ok := r.State().Get("last")
		require.True(t, ok)
		assert.Equal(t, "first", last)
	})

	t.Run("state readable on later requests", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t, &stub.Stub{
			Responses: []stub.ResponseConfig{{
				Inject: `{"data": ("count" in state ? "again" : "new"), "state": {"count": 1}}`,
			}},
		})

		resp, err := r.Resolve(context.Background(), &Request{Data: "a"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "new", resp.Data)

		resp, err = r.Resolve(context.Background(), &Request{Data: "b"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "again", resp.Data)
	})

	t.Run("compile error surfaces", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t, &stub.Stub{
			Responses: []stub.ResponseConfig{{Inject: `request.`}},
		})

		_, err := r.Resolve(context.Background(), &Request{Data: "x"}, nil)
		assert.Error(t, err)
	})
}

func TestResolveProxy(t *testing.T) {
	t.Parallel()

	// Upstream echoes the payload with a prefix.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				buf := make([]byte, 1024)
				n, err := c.Read(buf)
				if err != nil {
					return
				}
				_, _ = c.Write([]byte("upstream:" + string(buf[:n])))
			}(conn)
		}
	}()

	r := newResolver(t, &stub.Stub{
		Responses: []stub.ResponseConfig{{Proxy: &stub.ProxyResponse{To: ln.Addr().String()}}},
	})

	resp, err := r.Resolve(context.Background(), &Request{Data: "ping"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "upstream:ping", resp.Data)
}

func TestResolveProxyDialFailure(t *testing.T) {
	t.Parallel()

	r := newResolver(t, &stub.Stub{
		Responses: []stub.ResponseConfig{{Proxy: &stub.ProxyResponse{To: "127.0.0.1:1"}}},
	})
	r.SetProxyTimeout(500 * time.Millisecond)

	_, err := r.Resolve(context.Background(), &Request{Data: "ping"}, nil)
	assert.Error(t, err)
}

func TestResolveRoundRobinAcrossCalls(t *testing.T) {
	t.Parallel()

	r := newResolver(t, &stub.Stub{
		Responses: []stub.ResponseConfig{
			{Is: &stub.IsResponse{Data: "one"}},
			{Is: &stub.IsResponse{Data: "two"}},
		},
	})

	for _, want := range []string{"one", "two", "one"} {
		resp, err := r.Resolve(context.Background(), &Request{Data: "x"}, nil)
		require.NoError(t, err)
		assert.Equal(t, want, resp.Data)
	}
}

func TestStateMapping(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.Equal(t, 0, s.Len())

	s.Set("k", 42)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	snap := s.Snapshot()
	snap["k"] = "mutated"
	v, _ = s.Get("k")
	assert.Equal(t, 42, v, "snapshot mutation must not leak back")
}

var _ Resolver = (*StubResolver)(nil)
