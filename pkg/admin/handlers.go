package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/imposterd/imposterd/pkg/imposter"
	"github.com/imposterd/imposterd/pkg/protocol"
	"github.com/imposterd/imposterd/pkg/requestlog"
	"github.com/imposterd/imposterd/pkg/stub"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int    `json:"uptime"`
}

// ImposterView is the JSON representation of a running imposter.
type ImposterView struct {
	Port             int                 `json:"port"`
	Name             string              `json:"name,omitempty"`
	Protocol         string              `json:"protocol"`
	NumberOfRequests int64               `json:"numberOfRequests"`
	RecordRequests   bool                `json:"recordRequests"`
	Running          bool                `json:"running"`
	Stubs            []*stub.Stub        `json:"stubs,omitempty"`
	Requests         []*requestlog.Entry `json:"requests,omitempty"`
}

// ImposterListResponse is the JSON body of GET /imposters.
type ImposterListResponse struct {
	Imposters []ImposterView `json:"imposters"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{Error: errCode, Message: message})
}

func viewOf(imp *imposter.Imposter, detailed bool) ImposterView {
	v := ImposterView{
		Port:             imp.Port(),
		Name:             imp.Name(),
		Protocol:         protocol.ProtocolTCP.String(),
		NumberOfRequests: imp.NumberOfRequests(),
		RecordRequests:   imp.IsRecordingEnabled(),
		Running:          imp.IsRunning(),
	}
	if detailed {
		v.Stubs = imp.Stubs()
		v.Requests = imp.Requests()
	}
	return v
}

// imposterByPort resolves the {port} path value to a running imposter.
func (a *AdminAPI) imposterByPort(w http.ResponseWriter, r *http.Request) (*imposter.Imposter, bool) {
	port, err := strconv.Atoi(r.PathValue("port"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_port", "port must be a number")
		return nil, false
	}
	h, ok := a.registry.GetByPort(port)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no imposter on port "+r.PathValue("port"))
		return nil, false
	}
	imp, ok := h.(*imposter.Imposter)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal", "handler is not an imposter")
		return nil, false
	}
	return imp, true
}

func (a *AdminAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Uptime: a.Uptime()})
}

// handleCreateImposter handles POST /imposters. The body is an imposter
// config; the response carries the actual bound port.
func (a *AdminAPI) handleCreateImposter(w http.ResponseWriter, r *http.Request) {
	var cfg imposter.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	if cfg.Port != 0 {
		if _, exists := a.registry.GetByPort(cfg.Port); exists {
			writeError(w, http.StatusConflict, "port_in_use", "an imposter already occupies port "+strconv.Itoa(cfg.Port))
			return
		}
	}

	imp, err := imposter.Create(r.Context(), cfg, imposter.Deps{Logger: a.imposterLogger})
	if err != nil {
		writeError(w, http.StatusBadRequest, "create_failed", err.Error())
		return
	}
	if err := a.registry.Register(imp); err != nil {
		_ = imp.Close()
		writeError(w, http.StatusInternalServerError, "register_failed", err.Error())
		return
	}

	a.log.Info("imposter created", "port", imp.Port(), "name", imp.Name())
	writeJSON(w, http.StatusCreated, viewOf(imp, true))
}

func (a *AdminAPI) handleListImposters(w http.ResponseWriter, r *http.Request) {
	handlers := a.registry.ListByProtocol(protocol.ProtocolTCP)
	views := make([]ImposterView, 0, len(handlers))
	for _, h := range handlers {
		if imp, ok := h.(*imposter.Imposter); ok {
			views = append(views, viewOf(imp, false))
		}
	}
	writeJSON(w, http.StatusOK, ImposterListResponse{Imposters: views})
}

func (a *AdminAPI) handleGetImposter(w http.ResponseWriter, r *http.Request) {
	imp, ok := a.imposterByPort(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(imp, true))
}

// handleDeleteImposter handles DELETE /imposters/{port}. The deleted
// imposter's final state, request log included, is returned so callers can
// verify traffic after teardown.
func (a *AdminAPI) handleDeleteImposter(w http.ResponseWriter, r *http.Request) {
	imp, ok := a.imposterByPort(w, r)
	if !ok {
		return
	}

	view := viewOf(imp, true)
	if err := imp.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "close_failed", err.Error())
		return
	}
	_ = a.registry.Unregister(imp.ID())

	a.log.Info("imposter deleted", "port", view.Port)
	writeJSON(w, http.StatusOK, view)
}

func (a *AdminAPI) handleDeleteAllImposters(w http.ResponseWriter, r *http.Request) {
	handlers := a.registry.List()
	views := make([]ImposterView, 0, len(handlers))
	for _, h := range handlers {
		imp, ok := h.(*imposter.Imposter)
		if !ok {
			continue
		}
		views = append(views, viewOf(imp, true))
		_ = imp.Close()
		_ = a.registry.Unregister(imp.ID())
	}
	writeJSON(w, http.StatusOK, ImposterListResponse{Imposters: views})
}

func (a *AdminAPI) handleAddStub(w http.ResponseWriter, r *http.Request) {
	imp, ok := a.imposterByPort(w, r)
	if !ok {
		return
	}

	var s stub.Stub
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := imp.AddStub(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_stub", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (a *AdminAPI) handleListStubs(w http.ResponseWriter, r *http.Request) {
	imp, ok := a.imposterByPort(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stubs": imp.Stubs()})
}

// handleStubMatches handles GET /imposters/{port}/stubs/{stubID}/matches.
// Match diagnostics are recorded only for imposters created with debug
// enabled; for others the list is empty.
func (a *AdminAPI) handleStubMatches(w http.ResponseWriter, r *http.Request) {
	imp, ok := a.imposterByPort(w, r)
	if !ok {
		return
	}

	stubID := r.PathValue("stubID")
	known := false
	for _, s := range imp.Stubs() {
		if s.ID == stubID {
			known = true
			break
		}
	}
	if !known {
		writeError(w, http.StatusNotFound, "not_found", "no stub "+stubID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"matches": imp.StubRepository().Matches(stubID),
	})
}

func (a *AdminAPI) handleListRequests(w http.ResponseWriter, r *http.Request) {
	imp, ok := a.imposterByPort(w, r)
	if !ok {
		return
	}
	entries := imp.Requests()
	if entries == nil {
		entries = []*requestlog.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"requests":         entries,
		"numberOfRequests": imp.NumberOfRequests(),
	})
}

func (a *AdminAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	imp, ok := a.imposterByPort(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, imp.Stats())
}
