package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/mapper"
	"github.com/resolvedesk/quote-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RevisionService writes and reads the field-level audit trail of the quote
// version chain
type RevisionService struct {
	revisionRepo *repository.QuoteRevisionRepository
	quoteRepo    *repository.QuoteRepository
	guard        *VisibilityGuard
	permissions  *PermissionService
	logger       *zap.Logger
}

// NewRevisionService creates a new revision service
func NewRevisionService(
	revisionRepo *repository.QuoteRevisionRepository,
	quoteRepo *repository.QuoteRepository,
	guard *VisibilityGuard,
	permissions *PermissionService,
	logger *zap.Logger,
) *RevisionService {
	return &RevisionService{
		revisionRepo: revisionRepo,
		quoteRepo:    quoteRepo,
		guard:        guard,
		permissions:  permissions,
		logger:       logger,
	}
}

// Record diffs the trackable fields of two consecutive quote versions and
// writes one audit row per changed field, keyed to the new version's id.
// Writing nothing is a valid outcome. The caller passes the repository bound
// to its transaction so the rows commit with the version swap.
func (s *RevisionService) Record(ctx context.Context, repo *repository.QuoteRevisionRepository, oldVersion, newVersion *domain.Quote, reason string, actorID string) error {
	type tracked struct {
		name     string
		oldValue string
		newValue string
	}

	fields := []tracked{
		{"estimated_hours_minimum", formatFloat(oldVersion.EstimatedHoursMinimum), formatFloat(newVersion.EstimatedHoursMinimum)},
		{"estimated_hours_maximum", formatFloat(oldVersion.EstimatedHoursMaximum), formatFloat(newVersion.EstimatedHoursMaximum)},
		{"hourly_rate", formatFloat(oldVersion.HourlyRate), formatFloat(newVersion.HourlyRate)},
		{"fixed_cost", formatFloat(oldVersion.FixedCost), formatFloat(newVersion.FixedCost)},
		{"quote_effort_level_id", strconv.Itoa(oldVersion.QuoteEffortLevelID), strconv.Itoa(newVersion.QuoteEffortLevelID)},
		{"quote_confidence_level_id", formatIntPtr(oldVersion.QuoteConfidenceLevelID), formatIntPtr(newVersion.QuoteConfidenceLevelID)},
	}

	var revisions []domain.QuoteRevision
	for _, f := range fields {
		if f.oldValue == f.newValue {
			continue
		}
		revisions = append(revisions, domain.QuoteRevision{
			ID:              domain.NewRevisionID(),
			QuoteID:         newVersion.ID,
			ChangedByUserID: actorID,
			FieldName:       f.name,
			OldValue:        f.oldValue,
			NewValue:        f.newValue,
			Reason:          reason,
		})
	}

	if len(revisions) == 0 {
		return nil
	}

	if err := repo.CreateBatch(ctx, revisions); err != nil {
		return err
	}

	s.logger.Debug("recorded quote revisions",
		zap.String("quote_id", newVersion.ID.String()),
		zap.Int("changed_fields", len(revisions)))
	return nil
}

// History returns the audit rows recorded against a quote version, oldest
// first. Superseded versions stay readable so the trail survives updates.
func (s *RevisionService) History(ctx context.Context, ticketID domain.TicketID, quoteID domain.QuoteID) (*domain.RevisionListDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	quote, err := s.quoteRepo.GetByIDUnscoped(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	if quote.TicketID != ticketID {
		return nil, ErrQuoteNotFound
	}
	if err := s.guard.EnsureQuoteVisible(ctx, actor, quote); err != nil {
		return nil, err
	}
	if err := s.permissions.RequirePermission(ctx, actor, domain.PermissionQuotesRead); err != nil {
		return nil, err
	}

	revisions, err := s.revisionRepo.ListForQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}

	list := make([]domain.QuoteRevisionDTO, 0, len(revisions))
	for i := range revisions {
		list = append(list, mapper.ToRevisionDTO(&revisions[i]))
	}
	return &domain.RevisionListDTO{Revisions: list}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
