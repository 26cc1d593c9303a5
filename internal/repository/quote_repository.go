package repository

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/domain"
	"gorm.io/gorm"
)

// QuoteRepository handles database operations for quote versions
type QuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *QuoteRepository) WithTx(tx *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: tx}
}

// Create inserts a new quote version
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

// GetByID returns a live quote by id, with its ticket and approval preloaded
func (r *QuoteRepository) GetByID(ctx context.Context, id domain.QuoteID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Ticket").
		Preload("QuoteApproval").
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetByIDUnscoped returns a quote by id including soft-deleted versions.
// Revision history stays readable after a version is superseded.
func (r *QuoteRepository) GetByIDUnscoped(ctx context.Context, id domain.QuoteID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Unscoped().
		Preload("Ticket").
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// CurrentForTicket returns the single live version of a ticket's quote chain
func (r *QuoteRepository) CurrentForTicket(ctx context.Context, ticketID domain.TicketID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("QuoteApproval").
		Where("ticket_id = ?", ticketID).
		Order("version DESC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// NextVersion returns the next version number for a ticket's quote chain.
// Soft-deleted versions count: version numbers are never reused.
func (r *QuoteRepository) NextVersion(ctx context.Context, ticketID domain.TicketID) (int, error) {
	var maxVersion int
	err := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Unscoped().
		Where("ticket_id = ?", ticketID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	return maxVersion + 1, nil
}

// ListForTicket returns the live versions of a ticket's quote chain, newest
// version first. Superseded versions are excluded; the revision history is
// the read that reaches back past a supersede. The actor's organization
// filter is pushed into the query through the joined ticket.
func (r *QuoteRepository) ListForTicket(ctx context.Context, ticketID domain.TicketID) ([]domain.Quote, error) {
	var quotes []domain.Quote
	query := r.db.WithContext(ctx).
		Preload("QuoteApproval").
		Joins("JOIN tickets ON tickets.id = quotes.ticket_id").
		Where("quotes.ticket_id = ?", ticketID).
		Order("quotes.version DESC")
	query = ApplyOrganizationScope(ctx, query, "tickets.organization_id")
	err := query.Find(&quotes).Error
	return quotes, err
}

// SoftDelete marks a superseded quote version as deleted
func (r *QuoteRepository) SoftDelete(ctx context.Context, id domain.QuoteID) error {
	return r.db.WithContext(ctx).Delete(&domain.Quote{}, "id = ?", id).Error
}

// LinkApproval attaches an approval record to a quote version
func (r *QuoteRepository) LinkApproval(ctx context.Context, quoteID domain.QuoteID, approvalID domain.ApprovalID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id = ?", quoteID).
		Update("quote_approval_id", approvalID).Error
}
