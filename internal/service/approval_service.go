package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/mapper"
	"github.com/resolvedesk/quote-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApprovalService runs the PENDING to APPROVED/REJECTED state machine layered
// on a quote version. Terminal states are final; a new submission creates a
// new approval record rather than reopening an old one.
type ApprovalService struct {
	approvalRepo *repository.QuoteApprovalRepository
	quoteRepo    *repository.QuoteRepository
	guard        *VisibilityGuard
	permissions  *PermissionService
	db           *gorm.DB
	logger       *zap.Logger
}

// NewApprovalService creates a new approval service
func NewApprovalService(
	approvalRepo *repository.QuoteApprovalRepository,
	quoteRepo *repository.QuoteRepository,
	guard *VisibilityGuard,
	permissions *PermissionService,
	db *gorm.DB,
	logger *zap.Logger,
) *ApprovalService {
	return &ApprovalService{
		approvalRepo: approvalRepo,
		quoteRepo:    quoteRepo,
		guard:        guard,
		permissions:  permissions,
		db:           db,
		logger:       logger,
	}
}

// Submit creates a pending approval record for a quote version and links it.
// A quote that already carries a pending approval gets a second record; the
// link always points at the newest submission.
func (s *ApprovalService) Submit(ctx context.Context, ticketID domain.TicketID, quoteID domain.QuoteID) (*domain.QuoteApprovalDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	quote, err := s.loadQuote(ctx, actor, ticketID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.RequirePermission(ctx, actor, domain.PermissionQuotesCreate); err != nil {
		return nil, err
	}

	approval := &domain.QuoteApproval{
		ID:               domain.NewApprovalID(),
		ApprovedByUserID: actor.UserID,
		UserRole:         string(actor.Role),
		ApprovalStatusID: domain.ApprovalStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.approvalRepo.WithTx(tx).Create(ctx, approval); err != nil {
			return fmt.Errorf("failed to create approval: %w", err)
		}
		if err := s.quoteRepo.WithTx(tx).LinkApproval(ctx, quote.ID, approval.ID); err != nil {
			return fmt.Errorf("failed to link approval: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("submitted quote for approval",
		zap.String("quote_id", quote.ID.String()),
		zap.String("approval_id", approval.ID.String()),
		zap.String("submitted_by", actor.UserID))

	dto := mapper.ToApprovalDTO(approval)
	return &dto, nil
}

// Approve moves the quote's pending approval to APPROVED. The transition is
// a conditional update on the pending status, so of two concurrent decisions
// exactly one wins.
func (s *ApprovalService) Approve(ctx context.Context, ticketID domain.TicketID, quoteID domain.QuoteID, comment string) (*domain.QuoteApprovalDTO, error) {
	return s.decide(ctx, ticketID, quoteID, domain.ApprovalStatusApproved, comment, domain.PermissionQuotesApprove)
}

// Reject moves the quote's pending approval to REJECTED. The comment is
// mandatory and validated at the transport layer.
func (s *ApprovalService) Reject(ctx context.Context, ticketID domain.TicketID, quoteID domain.QuoteID, comment string) (*domain.QuoteApprovalDTO, error) {
	return s.decide(ctx, ticketID, quoteID, domain.ApprovalStatusRejected, comment, domain.PermissionQuotesReject)
}

func (s *ApprovalService) decide(ctx context.Context, ticketID domain.TicketID, quoteID domain.QuoteID, status domain.ApprovalStatus, comment string, permission domain.PermissionType) (*domain.QuoteApprovalDTO, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	quote, err := s.loadQuote(ctx, actor, ticketID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.RequirePermission(ctx, actor, permission); err != nil {
		return nil, err
	}

	if quote.QuoteApprovalID == nil {
		return nil, ErrNotPending
	}

	current, err := s.approvalRepo.GetByID(ctx, *quote.QuoteApprovalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	if current.ApprovalStatusID == domain.ApprovalStatusApproved && status == domain.ApprovalStatusApproved {
		return nil, ErrAlreadyApproved
	}
	if current.ApprovalStatusID.IsTerminal() {
		return nil, ErrNotPending
	}

	now := time.Now()
	affected, err := s.approvalRepo.TransitionFromPending(ctx, current.ID, status, comment, now)
	if err != nil {
		return nil, fmt.Errorf("failed to transition approval: %w", err)
	}
	if affected == 0 {
		// Lost the race to a concurrent decision
		return nil, ErrNotPending
	}

	s.logger.Info("decided quote approval",
		zap.String("quote_id", quote.ID.String()),
		zap.String("approval_id", current.ID.String()),
		zap.String("status", status.String()),
		zap.String("decided_by", actor.UserID))

	decided, err := s.approvalRepo.GetByID(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload approval: %w", err)
	}

	dto := mapper.ToApprovalDTO(decided)
	return &dto, nil
}

func (s *ApprovalService) loadQuote(ctx context.Context, actor *auth.ActorContext, ticketID domain.TicketID, quoteID domain.QuoteID) (*domain.Quote, error) {
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
