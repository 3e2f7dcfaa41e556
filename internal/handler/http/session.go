package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
	"github.com/cmlabs-hris/agent-hours-go/internal/handler/http/response"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/validator"
)

type SessionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)

	// Hours selects a manager and lists that manager's agents with their current hours
	Hours(w http.ResponseWriter, r *http.Request)

	Increment(w http.ResponseWriter, r *http.Request)
	Decrement(w http.ResponseWriter, r *http.Request)
	SetHours(w http.ResponseWriter, r *http.Request)

	// Events streams the session's hours changes as server-sent events
	Events(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	sessionService session.SessionService
}

func NewSessionHandler(sessionService session.SessionService) SessionHandler {
	return &sessionHandlerImpl{
		sessionService: sessionService,
	}
}

// Create handles POST /sessions
func (h *sessionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.Create(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session created", result)
}

// End handles DELETE /sessions/{id}
func (h *sessionHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.End(r.Context(), pathParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session ended", nil)
}

// Hours handles GET /sessions/{id}/hours?manager=
func (h *sessionHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
	manager := r.URL.Query().Get("manager")
	if validator.IsEmpty(manager) {
		response.HandleError(w, validator.ValidationErrors{
			{Field: "manager", Message: "manager is required"},
		})
		return
	}

	result, err := h.sessionService.SelectManager(r.Context(), pathParam(r, "id"), manager)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Increment handles POST /sessions/{id}/hours/{agent}/increment
func (h *sessionHandlerImpl) Increment(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.Increment(r.Context(), pathParam(r, "id"), pathParam(r, "agent"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decrement handles POST /sessions/{id}/hours/{agent}/decrement
func (h *sessionHandlerImpl) Decrement(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.Decrement(r.Context(), pathParam(r, "id"), pathParam(r, "agent"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetHours handles PUT /sessions/{id}/hours/{agent}
func (h *sessionHandlerImpl) SetHours(w http.ResponseWriter, r *http.Request) {
	var req session.SetHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.sessionService.SetHours(r.Context(), pathParam(r, "id"), pathParam(r, "agent"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Events handles GET /sessions/{id}/events
func (h *sessionHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	sessionID := pathParam(r, "id")
	events, cleanup, err := h.sessionService.Subscribe(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer cleanup()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: connected\ndata: {\"session_id\":%q}\n\n", sessionID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
