package session

import (
	"context"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/sse"
)

// Event names published on a session's stream.
const (
	EventHoursChanged = "hours_changed"
	EventSessionEnded = "session_ended"
)

// SessionService exposes the dashboard's commands as discrete handlers on explicit session state.
type SessionService interface {
	Create(ctx context.Context) (CreateSessionResponse, error)
	End(ctx context.Context, sessionID string) error

	// SelectManager returns the manager's agents and their current hours.
	SelectManager(ctx context.Context, sessionID, manager string) (ManagerHoursResponse, error)

	Increment(ctx context.Context, sessionID, agent string) (AgentHours, error)
	Decrement(ctx context.Context, sessionID, agent string) (AgentHours, error)
	SetHours(ctx context.Context, sessionID, agent string, req SetHoursRequest) (AgentHours, error)

	GenerateReport(ctx context.Context, sessionID string, req report.GenerateReportRequest) (report.Report, error)
	ExportReport(ctx context.Context, sessionID string, req report.GenerateReportRequest) (report.File, error)

	// Subscribe streams hours changes made in the session until it ends or cleanup is called.
	Subscribe(ctx context.Context, sessionID string) (<-chan sse.Event, func(), error)

	// ExpireIdle ends sessions idle for longer than ttl.
	ExpireIdle(ctx context.Context, ttl time.Duration) (int, error)
}
