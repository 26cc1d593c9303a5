package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionPurgeJobName is the name of the expired session purge job
const SessionPurgeJobName = "session_purge"

// SessionPurgeSchedule runs the purge at minute 10 of every hour
const SessionPurgeSchedule = "0 10 * * * *"

// SessionStore defines the session operations the purge job needs. The job
// never touches quotes.
type SessionStore interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// PermissionCleaner removes expired per-user permission overrides.
type PermissionCleaner interface {
	CleanupExpiredOverrides(ctx context.Context) (int64, error)
}

// SessionPurgeJob periodically removes expired sessions and stale permission
// overrides.
type SessionPurgeJob struct {
	sessions    SessionStore
	permissions PermissionCleaner
	logger      *zap.Logger
	timeout     time.Duration
}

// NewSessionPurgeJob creates a new session purge job. The timeout bounds one
// purge run.
func NewSessionPurgeJob(sessions SessionStore, permissions PermissionCleaner, logger *zap.Logger, timeout time.Duration) *SessionPurgeJob {
	return &SessionPurgeJob{
		sessions:    sessions,
		permissions: permissions,
		logger:      logger,
		timeout:     timeout,
	}
}

// Run executes one purge cycle
func (j *SessionPurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	deleted, err := j.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		j.logger.Error("failed to purge expired sessions", zap.Error(err))
	} else if deleted > 0 {
		j.logger.Info("purged expired sessions", zap.Int64("count", deleted))
	}

	if j.permissions != nil {
		if _, err := j.permissions.CleanupExpiredOverrides(ctx); err != nil {
			j.logger.Error("failed to clean up expired permission overrides", zap.Error(err))
		}
	}
}
