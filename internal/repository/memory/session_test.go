package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
	"github.com/cmlabs-hris/agent-hours-go/internal/service/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(id string, now time.Time) *session.State {
	return session.NewState(id, ledger.NewLedger(), session.DefaultHours, now)
}

func TestSessionRepository_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newState("s1", now)))
	assert.ErrorIs(t, repo.Create(ctx, newState("s1", now)), session.ErrSessionExists)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), session.ErrSessionNotFound)
}

func TestSessionRepository_SessionsDoNotShareLedgers(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Now()

	a := newState("a", now)
	b := newState("b", now)
	a.Ledger.Initialize([]string{"agent"}, 6.5)
	b.Ledger.Initialize([]string{"agent"}, 6.5)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, a.Ledger.Adjust("agent", 1))

	gotB, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	v, _ := gotB.Ledger.Get("agent")
	assert.Equal(t, 6.5, v)
}

func TestSessionRepository_DeleteIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newState("old", now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newState("fresh", now)))

	removed, err := repo.DeleteIdle(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, removed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	_, err = repo.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestSessionRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			_ = repo.Create(ctx, newState(id, time.Now()))
			_, _ = repo.Get(ctx, id)
			_, _ = repo.DeleteIdle(ctx, time.Now().Add(-time.Hour))
		}(i)
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}
