package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/repository"
	"github.com/resolvedesk/quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPendingApproval(t *testing.T, repo *repository.QuoteApprovalRepository) *domain.QuoteApproval {
	t.Helper()

	approval := &domain.QuoteApproval{
		ID:               domain.NewApprovalID(),
		ApprovedByUserID: "submitter",
		UserRole:         "agent",
		ApprovalStatusID: domain.ApprovalStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), approval))
	return approval
}

func TestQuoteApprovalRepository_TransitionFromPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewQuoteApprovalRepository(db)
	approval := createPendingApproval(t, repo)

	decidedAt := time.Now()
	affected, err := repo.TransitionFromPending(context.Background(), approval.ID, domain.ApprovalStatusApproved, "looks good", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	decided, err := repo.GetByID(context.Background(), approval.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusApproved, decided.ApprovalStatusID)
	assert.Equal(t, "looks good", decided.Comment)
	require.NotNil(t, decided.ApprovedAt)

	// The submitter stamp written at submit time is preserved
	assert.Equal(t, "submitter", decided.ApprovedByUserID)
	assert.Equal(t, "agent", decided.UserRole)
}

func TestQuoteApprovalRepository_TransitionFromPending_AlreadyDecided(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewQuoteApprovalRepository(db)
	approval := createPendingApproval(t, repo)

	affected, err := repo.TransitionFromPending(context.Background(), approval.ID, domain.ApprovalStatusRejected, "too expensive", time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	// A second decision must not overwrite the first
	affected, err = repo.TransitionFromPending(context.Background(), approval.ID, domain.ApprovalStatusApproved, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	decided, err := repo.GetByID(context.Background(), approval.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusRejected, decided.ApprovalStatusID)
	assert.Equal(t, "too expensive", decided.Comment)
}
