package repository

import (
	"context"
	"time"

	"github.com/resolvedesk/quote-api/internal/domain"
	"gorm.io/gorm"
)

// QuoteApprovalRepository handles database operations for quote approvals
type QuoteApprovalRepository struct {
	db *gorm.DB
}

// NewQuoteApprovalRepository creates a new quote approval repository
func NewQuoteApprovalRepository(db *gorm.DB) *QuoteApprovalRepository {
	return &QuoteApprovalRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *QuoteApprovalRepository) WithTx(tx *gorm.DB) *QuoteApprovalRepository {
	return &QuoteApprovalRepository{db: tx}
}

// Create inserts a new approval record
func (r *QuoteApprovalRepository) Create(ctx context.Context, approval *domain.QuoteApproval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

// GetByID returns an approval record by id
func (r *QuoteApprovalRepository) GetByID(ctx context.Context, id domain.ApprovalID) (*domain.QuoteApproval, error) {
	var approval domain.QuoteApproval
	err := r.db.WithContext(ctx).First(&approval, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

// TransitionFromPending moves an approval from pending to the given terminal
// status. The WHERE clause on the current status makes the transition atomic:
// zero rows affected means the record was not pending anymore. The submitter
// stamp written at submit time is left untouched.
func (r *QuoteApprovalRepository) TransitionFromPending(ctx context.Context, id domain.ApprovalID, status domain.ApprovalStatus, comment string, decidedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.QuoteApproval{}).
		Where("id = ? AND approval_status_id = ?", id, domain.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"approval_status_id": status,
			"comment":            comment,
			"approved_at":        decidedAt,
			"updated_at":         decidedAt,
		})
	return result.RowsAffected, result.Error
}
