package session

import (
	"context"
	"time"
)

// Repository holds live sessions. Sessions are process-local and never persisted.
type Repository interface {
	Create(ctx context.Context, state *State) error
	Get(ctx context.Context, id string) (*State, error)
	Delete(ctx context.Context, id string) error

	// DeleteIdle removes sessions last seen before cutoff and returns their ids.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error)

	Count(ctx context.Context) (int, error)
}
