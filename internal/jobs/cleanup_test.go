package jobs

import (
	"context"
	"testing"
	"time"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunOncePurgesOnlyOldRevokedSessions(t *testing.T) {
	repo, store := repotest.NewRepository()
	ctx := context.Background()

	live := uuid.New()
	revoked := uuid.New()
	for _, id := range []uuid.UUID{live, revoked} {
		require.NoError(t, repo.Session.Create(ctx, &entity.Session{TokenID: id, UserID: 1, IssuedAt: time.Now()}))
	}
	require.NoError(t, repo.Session.Revoke(ctx, revoked))

	janitor := NewSessionJanitor(repo.Session, time.Hour, zap.NewNop())

	// inside the retention window nothing goes
	assert.Zero(t, janitor.RunOnce(ctx))

	janitor.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, int64(1), janitor.RunOnce(ctx))

	_, ok := store.Session(revoked)
	assert.False(t, ok)
	_, ok = store.Session(live)
	assert.True(t, ok)
}

func TestStartRejectsBadSpec(t *testing.T) {
	repo, _ := repotest.NewRepository()
	janitor := NewSessionJanitor(repo.Session, time.Hour, zap.NewNop())

	assert.Error(t, janitor.Start("not a schedule"))
}

func TestStartAndStop(t *testing.T) {
	repo, _ := repotest.NewRepository()
	janitor := NewSessionJanitor(repo.Session, time.Hour, zap.NewNop())

	require.NoError(t, janitor.Start("@hourly"))
	janitor.Stop()
}
