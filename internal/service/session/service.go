package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/roster"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/sse"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/validator"
	"github.com/cmlabs-hris/agent-hours-go/internal/service/ledger"
	"github.com/google/uuid"
)

const (
	commandIncrement = "increment"
	commandDecrement = "decrement"
	commandSet       = "set"

	stepHours = 1.0
)

type SessionServiceImpl struct {
	sessions     session.Repository
	roster       roster.Service
	reports      report.ReportService
	hub          *sse.Hub
	defaultHours float64
	now          func() time.Time
}

func NewSessionService(
	sessions session.Repository,
	rosterService roster.Service,
	reportService report.ReportService,
	hub *sse.Hub,
	defaultHours float64,
) session.SessionService {
	return &SessionServiceImpl{
		sessions:     sessions,
		roster:       rosterService,
		reports:      reportService,
		hub:          hub,
		defaultHours: defaultHours,
		now:          time.Now,
	}
}

// Create starts a session whose ledger is seeded with every known agent.
func (s *SessionServiceImpl) Create(ctx context.Context) (session.CreateSessionResponse, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return session.CreateSessionResponse{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := s.now()
	l := ledger.NewLedger()
	l.Initialize(s.roster.AllAgents(), s.defaultHours)

	state := session.NewState(id.String(), l, s.defaultHours, now)
	if err := s.sessions.Create(ctx, state); err != nil {
		return session.CreateSessionResponse{}, err
	}
	s.refreshGauge(ctx)

	slog.InfoContext(ctx, "Session created", "session_id", state.ID, "agents", l.Len())

	return session.CreateSessionResponse{
		SessionID:    state.ID,
		DefaultHours: s.defaultHours,
		CreatedAt:    now.Format(time.RFC3339),
	}, nil
}

func (s *SessionServiceImpl) End(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.closeStream(sessionID)
	s.refreshGauge(ctx)
	slog.InfoContext(ctx, "Session ended", "session_id", sessionID)
	return nil
}

func (s *SessionServiceImpl) SelectManager(ctx context.Context, sessionID, manager string) (session.ManagerHoursResponse, error) {
	agents, err := s.roster.Agents(manager)
	if err != nil {
		return session.ManagerHoursResponse{}, err
	}

	var resp session.ManagerHoursResponse
	err = s.withSession(ctx, sessionID, func(state *session.State) error {
		state.Manager = manager
		state.Ledger.Initialize(agents, state.DefaultHours)

		resp = session.ManagerHoursResponse{
			Manager: manager,
			Agents:  make([]session.AgentHours, 0, len(agents)),
		}
		for _, agent := range agents {
			hours, _ := state.Ledger.Get(agent)
			resp.Agents = append(resp.Agents, session.AgentHours{Agent: agent, TotalHours: hours})
		}
		return nil
	})
	return resp, err
}

func (s *SessionServiceImpl) Increment(ctx context.Context, sessionID, agent string) (session.AgentHours, error) {
	return s.adjust(ctx, sessionID, agent, stepHours, commandIncrement)
}

func (s *SessionServiceImpl) Decrement(ctx context.Context, sessionID, agent string) (session.AgentHours, error) {
	return s.adjust(ctx, sessionID, agent, -stepHours, commandDecrement)
}

func (s *SessionServiceImpl) adjust(ctx context.Context, sessionID, agent string, delta float64, command string) (session.AgentHours, error) {
	if err := s.requireKnownAgent(agent); err != nil {
		return session.AgentHours{}, err
	}

	var out session.AgentHours
	err := s.withSession(ctx, sessionID, func(state *session.State) error {
		if err := state.Ledger.Adjust(agent, delta); err != nil {
			return err
		}
		hours, _ := state.Ledger.Get(agent)
		out = session.AgentHours{Agent: agent, TotalHours: hours}
		s.hub.Publish(sessionID, session.EventHoursChanged, out)
		return nil
	})
	if err != nil {
		return session.AgentHours{}, err
	}

	metrics.ObserveHoursCommand(command)
	return out, nil
}

func (s *SessionServiceImpl) SetHours(ctx context.Context, sessionID, agent string, req session.SetHoursRequest) (session.AgentHours, error) {
	if err := req.Validate(); err != nil {
		return session.AgentHours{}, err
	}
	if err := s.requireKnownAgent(agent); err != nil {
		return session.AgentHours{}, err
	}

	var out session.AgentHours
	err := s.withSession(ctx, sessionID, func(state *session.State) error {
		state.Ledger.Set(agent, *req.TotalHours)
		out = session.AgentHours{Agent: agent, TotalHours: *req.TotalHours}
		s.hub.Publish(sessionID, session.EventHoursChanged, out)
		return nil
	})
	if err != nil {
		return session.AgentHours{}, err
	}

	metrics.ObserveHoursCommand(commandSet)
	return out, nil
}

// GenerateReport runs the report against this session's ledger.
func (s *SessionServiceImpl) GenerateReport(ctx context.Context, sessionID string, req report.GenerateReportRequest) (report.Report, error) {
	var out report.Report
	err := s.withSession(ctx, sessionID, func(state *session.State) error {
		if req.Manager == "" {
			req.Manager = state.Manager
		}
		r, err := s.reports.Generate(ctx, state.Ledger, req)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	return out, err
}

func (s *SessionServiceImpl) ExportReport(ctx context.Context, sessionID string, req report.GenerateReportRequest) (report.File, error) {
	var out report.File
	err := s.withSession(ctx, sessionID, func(state *session.State) error {
		if req.Manager == "" {
			req.Manager = state.Manager
		}
		f, err := s.reports.Export(ctx, state.Ledger, req)
		if err != nil {
			return err
		}
		out = f
		return nil
	})
	return out, err
}

func (s *SessionServiceImpl) Subscribe(ctx context.Context, sessionID string) (<-chan sse.Event, func(), error) {
	if !validator.IsValidUUID(sessionID) {
		return nil, nil, session.ErrSessionNotFound
	}

	// Registered before the lookup, so a concurrent End or expiry always closes it.
	events, cleanup := s.hub.Subscribe(sessionID)
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		cleanup()
		return nil, nil, err
	}
	return events, cleanup, nil
}

func (s *SessionServiceImpl) ExpireIdle(ctx context.Context, ttl time.Duration) (int, error) {
	removed, err := s.sessions.DeleteIdle(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to expire idle sessions: %w", err)
	}
	for _, id := range removed {
		s.closeStream(id)
	}
	s.refreshGauge(ctx)
	if len(removed) > 0 {
		slog.InfoContext(ctx, "Idle sessions expired", "removed", len(removed), "ttl", ttl)
	}
	return len(removed), nil
}

// closeStream tells subscribers the session is gone, then disconnects them.
func (s *SessionServiceImpl) closeStream(sessionID string) {
	s.hub.Publish(sessionID, session.EventSessionEnded, map[string]string{"session_id": sessionID})
	s.hub.Close(sessionID)
}

// withSession serializes commands on one session and marks it as active.
func (s *SessionServiceImpl) withSession(ctx context.Context, sessionID string, fn func(state *session.State) error) error {
	if !validator.IsValidUUID(sessionID) {
		return session.ErrSessionNotFound
	}
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	state.Lock()
	defer state.Unlock()

	state.Touch(s.now())
	return fn(state)
}

func (s *SessionServiceImpl) requireKnownAgent(agent string) error {
	if _, ok := s.roster.ManagerOf(agent); !ok {
		return fmt.Errorf("%q: %w", agent, roster.ErrUnknownAgent)
	}
	return nil
}

func (s *SessionServiceImpl) refreshGauge(ctx context.Context) {
	if n, err := s.sessions.Count(ctx); err == nil {
		metrics.SetActiveSessions(n)
	}
}
