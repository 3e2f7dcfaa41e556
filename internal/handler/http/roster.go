package http

import (
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/roster"
	"github.com/cmlabs-hris/agent-hours-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RosterHandler interface {
	ListManagers(w http.ResponseWriter, r *http.Request)
	ListAgents(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	rosterService roster.Service
}

func NewRosterHandler(rosterService roster.Service) RosterHandler {
	return &rosterHandlerImpl{
		rosterService: rosterService,
	}
}

// ListManagers handles GET /managers
func (h *rosterHandlerImpl) ListManagers(w http.ResponseWriter, r *http.Request) {
	managers := h.rosterService.Managers()
	response.SuccessWithMeta(w, roster.ManagerListResponse{Managers: managers}, &response.Meta{Total: len(managers)})
}

// ListAgents handles GET /managers/{manager}/agents
func (h *rosterHandlerImpl) ListAgents(w http.ResponseWriter, r *http.Request) {
	manager := pathParam(r, "manager")

	agents, err := h.rosterService.Agents(manager)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, roster.AgentListResponse{Manager: manager, Agents: agents}, &response.Meta{Total: len(agents)})
}

// pathParam returns the decoded value of a chi URL parameter.
// chi matches against RawPath when it is set, leaving those params escaped.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
