package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/imposterd/imposterd/pkg/logging"
	"github.com/imposterd/imposterd/pkg/metrics"
	"github.com/imposterd/imposterd/pkg/protocol"
)

// ShutdownTimeout bounds the graceful HTTP shutdown in Stop.
const ShutdownTimeout = 5 * time.Second

// AdminAPI exposes a REST API for managing imposters.
type AdminAPI struct {
	registry   *protocol.Registry
	httpServer *http.Server
	port       int
	startTime  time.Time
	log        *slog.Logger

	// imposterLogger is handed to imposters created through the API.
	imposterLogger *slog.Logger
}

// NewAdminAPI creates an admin API over the given imposter registry.
func NewAdminAPI(port int, registry *protocol.Registry) *AdminAPI {
	if registry == nil {
		registry = protocol.NewRegistry()
	}

	a := &AdminAPI{
		registry: registry,
		port:     port,
		log:      logging.Nop(),
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return a
}

func (a *AdminAPI) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.Handle("GET /metrics", metrics.DefaultRegistry().Handler())

	mux.HandleFunc("POST /imposters", a.handleCreateImposter)
	mux.HandleFunc("GET /imposters", a.handleListImposters)
	mux.HandleFunc("DELETE /imposters", a.handleDeleteAllImposters)
	mux.HandleFunc("GET /imposters/{port}", a.handleGetImposter)
	mux.HandleFunc("DELETE /imposters/{port}", a.handleDeleteImposter)
	mux.HandleFunc("POST /imposters/{port}/stubs", a.handleAddStub)
	mux.HandleFunc("GET /imposters/{port}/stubs", a.handleListStubs)
	mux.HandleFunc("GET /imposters/{port}/stubs/{stubID}/matches", a.handleStubMatches)
	mux.HandleFunc("GET /imposters/{port}/requests", a.handleListRequests)
	mux.HandleFunc("GET /imposters/{port}/stats", a.handleStats)
}

// Handler returns the HTTP handler, for serving through a custom listener
// or in tests.
func (a *AdminAPI) Handler() http.Handler {
	return a.httpServer.Handler
}

// Registry returns the imposter registry the API manages.
func (a *AdminAPI) Registry() *protocol.Registry {
	return a.registry
}

// SetLogger sets the operational logger. Imposters created through the API
// inherit it.
func (a *AdminAPI) SetLogger(log *slog.Logger) {
	if log != nil {
		a.log = log
		a.imposterLogger = log
	} else {
		a.log = logging.Nop()
		a.imposterLogger = nil
	}
}

// Start begins serving in the background.
func (a *AdminAPI) Start() error {
	a.startTime = time.Now()
	a.log.Info("starting admin API", "port", a.port)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("admin API error", "error", err)
		}
	}()
	return nil
}

// Stop shuts the HTTP server down gracefully. Running imposters are left to
// the caller; the serve command stops them through the registry.
func (a *AdminAPI) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return a.httpServer.Shutdown(ctx)
}

// Uptime returns the API uptime in seconds.
func (a *AdminAPI) Uptime() int {
	return int(time.Since(a.startTime).Seconds())
}
