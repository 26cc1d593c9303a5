package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resolvedesk/quote-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSessionStore struct {
	deleted int64
	err     error
	calls   int
	cutoff  time.Time
}

func (f *fakeSessionStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return f.deleted, f.err
}

type fakePermissionCleaner struct {
	calls int
	err   error
}

func (f *fakePermissionCleaner) CleanupExpiredOverrides(ctx context.Context) (int64, error) {
	f.calls++
	return 0, f.err
}

func TestSessionPurgeJob_Run(t *testing.T) {
	sessions := &fakeSessionStore{deleted: 3}
	cleaner := &fakePermissionCleaner{}
	job := jobs.NewSessionPurgeJob(sessions, cleaner, zap.NewNop(), time.Minute)

	before := time.Now()
	job.Run()

	assert.Equal(t, 1, sessions.calls)
	assert.Equal(t, 1, cleaner.calls)
	assert.False(t, sessions.cutoff.Before(before))
}

func TestSessionPurgeJob_SessionErrorDoesNotSkipCleanup(t *testing.T) {
	sessions := &fakeSessionStore{err: errors.New("db down")}
	cleaner := &fakePermissionCleaner{}
	job := jobs.NewSessionPurgeJob(sessions, cleaner, zap.NewNop(), time.Minute)

	job.Run()

	assert.Equal(t, 1, sessions.calls)
	assert.Equal(t, 1, cleaner.calls)
}

func TestSessionPurgeJob_NilCleaner(t *testing.T) {
	sessions := &fakeSessionStore{}
	job := jobs.NewSessionPurgeJob(sessions, nil, zap.NewNop(), time.Minute)

	// Must not panic without a permission cleaner
	job.Run()
	assert.Equal(t, 1, sessions.calls)
}
