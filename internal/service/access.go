package service

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/domain"
	"go.uber.org/zap"
)

// VisibilityGuard decides whether an actor may see a ticket or quote.
// A missing record is reported as not found before any permission check;
// an existing record in a foreign organization is forbidden.
type VisibilityGuard struct {
	permissions *PermissionService
	logger      *zap.Logger
}

// NewVisibilityGuard creates a new visibility guard
func NewVisibilityGuard(permissions *PermissionService, logger *zap.Logger) *VisibilityGuard {
	return &VisibilityGuard{
		permissions: permissions,
		logger:      logger,
	}
}

// EnsureTicketVisible returns ErrPermissionDenied when the ticket belongs to
// an organization the actor may not see
func (g *VisibilityGuard) EnsureTicketVisible(ctx context.Context, actor *auth.ActorContext, ticket *domain.Ticket) error {
	if g.canSeeOrganization(ctx, actor, ticket.OrganizationID) {
		return nil
	}

	g.logger.Debug("ticket not visible to actor",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("user_id", actor.UserID))
	return ErrPermissionDenied
}

// EnsureQuoteVisible returns ErrPermissionDenied when the quote's ticket
// belongs to an organization the actor may not see. The quote must be loaded
// with its ticket.
func (g *VisibilityGuard) EnsureQuoteVisible(ctx context.Context, actor *auth.ActorContext, quote *domain.Quote) error {
	if quote.Ticket == nil {
		g.logger.Warn("quote loaded without ticket",
			zap.String("quote_id", quote.ID.String()))
		return ErrQuoteNotFound
	}
	if g.canSeeOrganization(ctx, actor, quote.Ticket.OrganizationID) {
		return nil
	}

	g.logger.Debug("quote not visible to actor",
		zap.String("quote_id", quote.ID.String()),
		zap.String("user_id", actor.UserID))
	return ErrPermissionDenied
}

func (g *VisibilityGuard) canSeeOrganization(ctx context.Context, actor *auth.ActorContext, orgID domain.OrganizationID) bool {
	if actor.OrganizationID == orgID {
		return true
	}

	crossOrg, err := g.permissions.CheckPermission(ctx, actor, domain.PermissionQuotesReadAll)
	if err == nil && crossOrg {
		return true
	}
	crossOrg, err = g.permissions.CheckPermission(ctx, actor, domain.PermissionTicketsReadAll)
	return err == nil && crossOrg
}
