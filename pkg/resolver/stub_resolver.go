package resolver

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/imposterd/imposterd/pkg/logging"
	"github.com/imposterd/imposterd/pkg/stub"
)

// DefaultProxyTimeout bounds the dial-write-read cycle of a proxy response.
const DefaultProxyTimeout = 5 * time.Second

// proxyReadBufferSize caps a single upstream reply read.
const proxyReadBufferSize = 64 * 1024

// StubResolver resolves requests against a stub repository.
//
// Inject expressions are evaluated with expr-lang against an environment of
// {request, state}: request carries data and requestFrom, state is a
// snapshot of the imposter's state mapping. The expression result becomes
// the response payload; a map result may carry "data" for the payload and
// "state" for key/value pairs to persist back into the imposter's state.
type StubResolver struct {
	stubs *stub.Repository
	state *State

	// proxyTimeout bounds each proxy round trip.
	proxyTimeout time.Duration

	programMu sync.RWMutex
	programs  map[string]*vm.Program
}

// NewStubResolver creates a resolver over the given repository and state.
func NewStubResolver(stubs *stub.Repository, state *State) *StubResolver {
	if state == nil {
		state = NewState()
	}
	return &StubResolver{
		stubs:        stubs,
		state:        state,
		proxyTimeout: DefaultProxyTimeout,
		programs:     make(map[string]*vm.Program),
	}
}

// SetProxyTimeout overrides the per-request proxy timeout.
func (r *StubResolver) SetProxyTimeout(d time.Duration) {
	if d > 0 {
		r.proxyTimeout = d
	}
}

// State returns the state mapping shared with inject expressions.
func (r *StubResolver) State() *State {
	return r.state
}

// Resolve finds the first matching stub and applies its next response
// strategy. No matching stub, or a matched stub without responses, yields an
// empty raw response for the post-processor to fill.
func (r *StubResolver) Resolve(ctx context.Context, req *Request, logger *logging.Scoped) (*RawResponse, error) {
	fields := map[string]string{
		stub.FieldData:        req.Data,
		stub.FieldRequestFrom: req.RequestFrom,
	}

	matched, resp := r.stubs.Match(fields)
	if resp == nil {
		if matched != nil && logger != nil {
			logger.Debug("stub matched without responses, using default", "stub", matched.ID)
		}
		return &RawResponse{}, nil
	}

	switch {
	case resp.Is != nil:
		return &RawResponse{Data: resp.Is.Data}, nil
	case resp.Proxy != nil:
		return r.resolveProxy(ctx, resp.Proxy, req)
	case resp.Inject != "":
		return r.resolveInject(resp.Inject, req)
	default:
		return &RawResponse{}, nil
	}
}

// resolveProxy forwards the request payload to the upstream address and
// relays a single reply read, mirroring the one-read-one-request framing of
// the imposter itself.
func (r *StubResolver) resolveProxy(ctx context.Context, p *stub.ProxyResponse, req *Request) (*RawResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, r.proxyTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.To)
	if err != nil {
		return nil, fmt.Errorf("proxy dial %s: %w", p.To, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.Write([]byte(req.Data)); err != nil {
		return nil, fmt.Errorf("proxy write %s: %w", p.To, err)
	}

	buf := make([]byte, proxyReadBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("proxy read %s: %w", p.To, err)
	}

	return &RawResponse{Data: string(buf[:n])}, nil
}

// resolveInject evaluates the expression and maps its result onto a raw
// response, persisting any returned state updates.
func (r *StubResolver) resolveInject(expression string, req *Request) (*RawResponse, error) {
	env := map[string]interface{}{
		"request": map[string]interface{}{
			"data":        req.Data,
			"requestFrom": req.RequestFrom,
		},
		"state": r.state.Snapshot(),
	}

	program, err := r.compile(expression)
	if err != nil {
		return nil, fmt.Errorf("inject compile: %w", err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("inject eval: %w", err)
	}

	switch val := result.(type) {
	case string:
		return &RawResponse{Data: val}, nil
	case map[string]interface{}:
		if updates, ok := val["state"].(map[string]interface{}); ok {
			r.state.merge(updates)
		}
		data, _ := val["data"].(string)
		return &RawResponse{Data: data}, nil
	case nil:
		return &RawResponse{}, nil
	default:
		return &RawResponse{Data: fmt.Sprintf("%v", val)}, nil
	}
}

// compile returns a cached program for the expression, compiling on first use.
func (r *StubResolver) compile(expression string) (*vm.Program, error) {
	r.programMu.RLock()
	program, ok := r.programs[expression]
	r.programMu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}

	r.programMu.Lock()
	// Another goroutine may have compiled the same expression.
	if existing, ok := r.programs[expression]; ok {
		program = existing
	} else {
		r.programs[expression] = program
	}
	r.programMu.Unlock()

	return program, nil
}
