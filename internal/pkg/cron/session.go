package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
)

// SessionJobs holds housekeeping jobs for user sessions.
type SessionJobs struct {
	sessionService session.SessionService
	ttl            time.Duration
	interval       time.Duration
}

func NewSessionJobs(sessionService session.SessionService, ttl, interval time.Duration) *SessionJobs {
	return &SessionJobs{
		sessionService: sessionService,
		ttl:            ttl,
		interval:       interval,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("expire_idle_sessions", j.interval, j.ExpireIdleSessions)
}

// ExpireIdleSessions drops sessions with no command for longer than the TTL.
func (j *SessionJobs) ExpireIdleSessions(ctx context.Context) error {
	_, err := j.sessionService.ExpireIdle(ctx, j.ttl)
	return err
}
