package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/engine"
	"github.com/resolvedesk/quote-api/internal/mapper"
	"github.com/resolvedesk/quote-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuoteService owns the version chain per ticket: it creates version 1 on
// manual or automatic quoting, and on update soft-deletes the current version
// and inserts version N+1 in one transaction.
type QuoteService struct {
	quoteRepo    *repository.QuoteRepository
	ticketRepo   *repository.TicketRepository
	revisionRepo *repository.QuoteRevisionRepository
	resolver     *engine.Resolver
	guard        *VisibilityGuard
	permissions  *PermissionService
	revisions    *RevisionService
	db           *gorm.DB
	logger       *zap.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	ticketRepo *repository.TicketRepository,
	revisionRepo *repository.QuoteRevisionRepository,
	resolver *engine.Resolver,
	guard *VisibilityGuard,
	permissions *PermissionService,
	revisions *RevisionService,
	db *gorm.DB,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		ticketRepo:   ticketRepo,
		revisionRepo: revisionRepo,
		resolver:     resolver,
		guard:        guard,
		permissions:  permissions,
		revisions:    revisions,
		db:           db,
		logger:       logger,
	}
}

// GenerateQuote produces an automatic quote for a ticket from the matched
// calculation rule and rate profile, and aligns the ticket's priority with
// the rule's suggestion
func (s *QuoteService) GenerateQuote(ctx context.Context, ticketID domain.TicketID) (*domain.QuoteDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	ticket, err := s.loadTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.RequirePermission(ctx, actor, domain.PermissionQuotesCreate); err != nil {
		return nil, err
	}

	rule, err := s.resolver.ResolveCalculationRule(ctx, ticket)
	if err != nil {
		if errors.Is(err, engine.ErrNoMatchingRule) {
			return nil, ErrNoMatchingRule
		}
		return nil, fmt.Errorf("failed to resolve calculation rule: %w", err)
	}

	profile, err := s.resolver.ResolveRateProfile(ctx, ticket)
	if err != nil {
		if errors.Is(err, engine.ErrNoActiveRateProfile) {
			return nil, ErrNoActiveRateProfile
		}
		return nil, fmt.Errorf("failed to resolve rate profile: %w", err)
	}

	effortMin, effortMax := s.resolver.ResolveEffortHours(rule)
	result := engine.Calculate(engine.CalculationInput{
		UrgencyMultiplier: rule.UrgencyMultiplier,
		BaseHourlyRate:    profile.BaseHourlyRate,
		RateMultiplier:    profile.Multiplier,
		EffortHoursMin:    effortMin,
		EffortHoursMax:    effortMax,
	})

	quote := &domain.Quote{
		ID:                        domain.NewQuoteID(),
		TicketID:                  ticket.ID,
		EstimatedHoursMinimum:     result.AdjustedHoursMin,
		EstimatedHoursMaximum:     result.AdjustedHoursMax,
		EstimatedResolutionTime:   result.MidHours,
		HourlyRate:                result.HourlyRate,
		EstimatedCost:             result.Cost,
		FixedCost:                 0,
		SuggestedTicketPriorityID: rule.SuggestedTicketPriorityID,
		QuoteEffortLevelID:        rule.QuoteEffortLevelID,
		Origin:                    domain.QuoteOriginAutomated,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		quoteRepo := s.quoteRepo.WithTx(tx)

		version, err := quoteRepo.NextVersion(ctx, ticket.ID)
		if err != nil {
			return fmt.Errorf("failed to determine next version: %w", err)
		}
		quote.Version = version

		if version > 1 {
			current, err := quoteRepo.CurrentForTicket(ctx, ticket.ID)
			if err == nil {
				if err := quoteRepo.SoftDelete(ctx, current.ID); err != nil {
					return fmt.Errorf("failed to supersede current quote: %w", err)
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load current quote: %w", err)
			}
		}

		if err := quoteRepo.Create(ctx, quote); err != nil {
			return fmt.Errorf("failed to create quote: %w", err)
		}

		if ticket.TicketPriorityID != rule.SuggestedTicketPriorityID {
			if err := s.ticketRepo.WithTx(tx).UpdatePriority(ctx, ticket.ID, rule.SuggestedTicketPriorityID); err != nil {
				return fmt.Errorf("failed to update ticket priority: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("generated automatic quote",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("quote_id", quote.ID.String()),
		zap.Int("version", quote.Version),
		zap.Float64("estimated_cost", quote.EstimatedCost))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// CreateQuote creates a manual quote version from user-supplied figures. The
// suggested priority mirrors the ticket's current priority; manual quoting
// never moves the ticket.
func (s *QuoteService) CreateQuote(ctx context.Context, ticketID domain.TicketID, req *domain.CreateQuoteRequest) (*domain.QuoteDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	ticket, err := s.loadTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.RequirePermission(ctx, actor, domain.PermissionQuotesCreate); err != nil {
		return nil, err
	}

	if req.EstimatedHoursMaximum < req.EstimatedHoursMinimum {
		return nil, ErrInvalidHourRange
	}

	result := engine.CalculateManual(req.EstimatedHoursMinimum, req.EstimatedHoursMaximum, req.HourlyRate, req.FixedCost)

	quote := &domain.Quote{
		ID:                        domain.NewQuoteID(),
		TicketID:                  ticket.ID,
		EstimatedHoursMinimum:     req.EstimatedHoursMinimum,
		EstimatedHoursMaximum:     req.EstimatedHoursMaximum,
		EstimatedResolutionTime:   result.MidHours,
		HourlyRate:                req.HourlyRate,
		EstimatedCost:             result.Cost,
		FixedCost:                 req.FixedCost,
		QuoteConfidenceLevelID:    req.QuoteConfidenceLevelID,
		SuggestedTicketPriorityID: ticket.TicketPriorityID,
		QuoteEffortLevelID:        req.QuoteEffortLevelID,
		Origin:                    domain.QuoteOriginManual,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		quoteRepo := s.quoteRepo.WithTx(tx)

		version, err := quoteRepo.NextVersion(ctx, ticket.ID)
		if err != nil {
			return fmt.Errorf("failed to determine next version: %w", err)
		}
		quote.Version = version

		if version > 1 {
			current, err := quoteRepo.CurrentForTicket(ctx, ticket.ID)
			if err == nil {
				if err := quoteRepo.SoftDelete(ctx, current.ID); err != nil {
					return fmt.Errorf("failed to supersede current quote: %w", err)
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load current quote: %w", err)
			}
		}

		return quoteRepo.Create(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created manual quote",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("quote_id", quote.ID.String()),
		zap.Int("version", quote.Version))

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// UpdateQuote merges a partial update onto the current version and persists
// the result as version N+1. The old version is soft-deleted and one revision
// row is written per changed trackable field, all inside one transaction. The
// new version always starts without an approval link.
func (s *QuoteService) UpdateQuote(ctx context.Context, ticketID domain.TicketID, quoteID domain.QuoteID, req *domain.UpdateQuoteRequest) (*domain.QuoteDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	current, err := s.loadQuote(ctx, actor, ticketID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.RequirePermission(ctx, actor, domain.PermissionQuotesUpdate); err != nil {
		return nil, err
	}

	merged := *current
	if req.EstimatedHoursMinimum != nil {
		merged.EstimatedHoursMinimum = *req.EstimatedHoursMinimum
	}
	if req.EstimatedHoursMaximum != nil {
		merged.EstimatedHoursMaximum = *req.EstimatedHoursMaximum
	}
	if req.HourlyRate != nil {
		merged.HourlyRate = *req.HourlyRate
	}
	if req.FixedCost != nil {
		merged.FixedCost = *req.FixedCost
	}
	if req.QuoteEffortLevelID != nil {
		merged.QuoteEffortLevelID = *req.QuoteEffortLevelID
	}
	if req.QuoteConfidenceLevelID != nil {
		merged.QuoteConfidenceLevelID = req.QuoteConfidenceLevelID
	}

	if merged.EstimatedHoursMaximum < merged.EstimatedHoursMinimum {
		return nil, ErrInvalidHourRange
	}

	result := engine.CalculateManual(merged.EstimatedHoursMinimum, merged.EstimatedHoursMaximum, merged.HourlyRate, merged.FixedCost)

	next := &domain.Quote{
		ID:                        domain.NewQuoteID(),
		TicketID:                  current.TicketID,
		Version:                   current.Version + 1,
		EstimatedHoursMinimum:     merged.EstimatedHoursMinimum,
		EstimatedHoursMaximum:     merged.EstimatedHoursMaximum,
		EstimatedResolutionTime:   result.MidHours,
		HourlyRate:                merged.HourlyRate,
		EstimatedCost:             result.Cost,
		FixedCost:                 merged.FixedCost,
		FinalCost:                 current.FinalCost,
		QuoteConfidenceLevelID:    merged.QuoteConfidenceLevelID,
		SuggestedTicketPriorityID: current.SuggestedTicketPriorityID,
		QuoteEffortLevelID:        merged.QuoteEffortLevelID,
		Origin:                    current.Origin,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		quoteRepo := s.quoteRepo.WithTx(tx)

		if err := quoteRepo.Create(ctx, next); err != nil {
			return fmt.Errorf("failed to create new quote version: %w", err)
		}
		if err := quoteRepo.SoftDelete(ctx, current.ID); err != nil {
			return fmt.Errorf("failed to soft-delete superseded version: %w", err)
		}
		if err := s.revisions.Record(ctx, s.revisionRepo.WithTx(tx), current, next, req.Reason, actor.UserID); err != nil {
			return fmt.Errorf("failed to record revisions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("updated quote",
		zap.String("ticket_id", current.TicketID.String()),
		zap.String("old_quote_id", current.ID.String()),
		zap.String("new_quote_id", next.ID.String()),
		zap.Int("version", next.Version))

	dto := mapper.ToQuoteDTO(next)
	return &dto, nil
}

// GetQuote returns a single live quote version with its approval
func (s *QuoteService) GetQuote(ctx context.Context, ticketID domain.TicketID, quoteID domain.QuoteID) (*domain.QuoteDetailDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	quote, err := s.loadQuote(ctx, actor, ticketID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.RequirePermission(ctx, actor, domain.PermissionQuotesRead); err != nil {
		return nil, err
	}

	dto := mapper.ToQuoteDetailDTO(quote)
	return &dto, nil
}

// ListQuotesForTicket returns the live versions of a ticket's quote chain,
// newest first. Superseded versions are excluded; revision history is the
// read that covers them.
func (s *QuoteService) ListQuotesForTicket(ctx context.Context, ticketID domain.TicketID) (*domain.QuoteListDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if _, err := s.loadTicket(ctx, actor, ticketID); err != nil {
		return nil, err
	}

	if err := s.permissions.RequirePermission(ctx, actor, domain.PermissionQuotesRead); err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.ListForTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	list := make([]domain.QuoteDTO, 0, len(quotes))
	for i := range quotes {
		list = append(list, mapper.ToQuoteDTO(&quotes[i]))
	}
	return &domain.QuoteListDTO{Quotes: list}, nil
}

// loadTicket fetches a ticket and applies the visibility rule. A missing
// ticket is not found before any permission question is asked.
func (s *QuoteService) loadTicket(ctx context.Context, actor *auth.ActorContext, ticketID domain.TicketID) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if err := s.guard.EnsureTicketVisible(ctx, actor, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// loadQuote fetches a live quote, checks it belongs to the ticket in the
// request path, and applies the visibility rule
func (s *QuoteService) loadQuote(ctx context.Context, actor *auth.ActorContext, ticketID domain.TicketID, quoteID domain.QuoteID) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classifyMissingQuote(ctx, s.quoteRepo, s.guard, actor, ticketID, quoteID)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	if quote.TicketID != ticketID {
		return nil, ErrQuoteNotFound
	}
	if err := s.guard.EnsureQuoteVisible(ctx, actor, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// classifyMissingQuote distinguishes a superseded version from a quote that
// never existed. Visibility is checked on the dead row first so actors from
// other organizations keep seeing not found.
func classifyMissingQuote(ctx context.Context, quoteRepo *repository.QuoteRepository, guard *VisibilityGuard, actor *auth.ActorContext, ticketID domain.TicketID, quoteID domain.QuoteID) error {
	dead, err := quoteRepo.GetByIDUnscoped(ctx, quoteID)
	if err != nil || dead.TicketID != ticketID || !dead.DeletedAt.Valid {
		return ErrQuoteNotFound
	}
	if err := guard.EnsureQuoteVisible(ctx, actor, dead); err != nil {
		return ErrQuoteNotFound
	}
	return ErrQuoteSuperseded
}
