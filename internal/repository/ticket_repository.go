package repository

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/domain"
	"gorm.io/gorm"
)

// TicketRepository handles database operations for tickets
type TicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *TicketRepository) WithTx(tx *gorm.DB) *TicketRepository {
	return &TicketRepository{db: tx}
}

// GetByID returns a ticket by id, unscoped by organization. Callers decide
// visibility; the repository only fetches.
func (r *TicketRepository) GetByID(ctx context.Context, id domain.TicketID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdatePriority sets the ticket's current priority. Called when an automated
// quote suggests a different priority than the ticket carries.
func (r *TicketRepository) UpdatePriority(ctx context.Context, id domain.TicketID, priorityID int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id).
		Update("ticket_priority_id", priorityID).Error
}
