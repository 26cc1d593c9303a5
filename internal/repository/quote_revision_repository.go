package repository

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/domain"
	"gorm.io/gorm"
)

// QuoteRevisionRepository handles database operations for the field-level
// audit trail
type QuoteRevisionRepository struct {
	db *gorm.DB
}

// NewQuoteRevisionRepository creates a new quote revision repository
func NewQuoteRevisionRepository(db *gorm.DB) *QuoteRevisionRepository {
	return &QuoteRevisionRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *QuoteRevisionRepository) WithTx(tx *gorm.DB) *QuoteRevisionRepository {
	return &QuoteRevisionRepository{db: tx}
}

// CreateBatch inserts a set of revision rows in one statement
func (r *QuoteRevisionRepository) CreateBatch(ctx context.Context, revisions []domain.QuoteRevision) error {
	if len(revisions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&revisions).Error
}

// ListForQuote returns all revision rows recorded against a quote version,
// oldest first
func (r *QuoteRevisionRepository) ListForQuote(ctx context.Context, quoteID domain.QuoteID) ([]domain.QuoteRevision, error) {
	var revisions []domain.QuoteRevision
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&revisions).Error
	return revisions, err
}
