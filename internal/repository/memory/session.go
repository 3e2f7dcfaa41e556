package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
)

type sessionRepositoryImpl struct {
	mu       sync.RWMutex
	sessions map[string]*session.State
}

// NewSessionRepository keeps sessions in process memory; each session owns its own ledger.
func NewSessionRepository() session.Repository {
	return &sessionRepositoryImpl{
		sessions: make(map[string]*session.State),
	}
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, state *session.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[state.ID]; ok {
		return session.ErrSessionExists
	}
	r.sessions[state.ID] = state
	return nil
}

func (r *sessionRepositoryImpl) Get(ctx context.Context, id string) (*session.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return state, nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return session.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepositoryImpl) DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, state := range r.sessions {
		if state.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}

func (r *sessionRepositoryImpl) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
