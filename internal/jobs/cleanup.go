// Package jobs holds background maintenance that runs alongside the API.
package jobs

import (
	"context"
	"time"

	"pizza-service/internal/data/repository"

	"github.com/robfig/cron"
	"go.uber.org/zap"
)

// SessionJanitor periodically purges revoked session records once they are
// older than the retention window. Live sessions are never touched.
type SessionJanitor struct {
	sessions  repository.SessionRepository
	retention time.Duration
	cron      *cron.Cron
	now       func() time.Time
	log       *zap.Logger
}

func NewSessionJanitor(sessions repository.SessionRepository, retention time.Duration, log *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions:  sessions,
		retention: retention,
		cron:      cron.NewWithLocation(time.UTC),
		now:       time.Now,
		log:       log.With(zap.String("job", "session_janitor")),
	}
}

// Start schedules the purge on spec, a six-field cron expression or a
// descriptor such as "@hourly".
func (j *SessionJanitor) Start(spec string) error {
	if err := j.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		j.log.Error("Session janitor schedule rejected", zap.String("spec", spec), zap.Error(err))
		return err
	}

	j.cron.Start()
	j.log.Info("Session janitor started", zap.String("spec", spec), zap.Duration("retention", j.retention))
	return nil
}

func (j *SessionJanitor) Stop() {
	j.cron.Stop()
}

// RunOnce performs a single purge and returns the number of removed records.
func (j *SessionJanitor) RunOnce(ctx context.Context) int64 {
	cutoff := j.now().Add(-j.retention)

	removed, err := j.sessions.CleanRevokedSessions(ctx, cutoff)
	if err != nil {
		j.log.Error("Failed to purge revoked sessions", zap.Error(err), zap.Time("cutoff", cutoff))
		return 0
	}

	if removed > 0 {
		j.log.Info("Purged revoked sessions", zap.Int64("removed", removed), zap.Time("cutoff", cutoff))
	}
	return removed
}
