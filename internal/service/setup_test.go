package service_test

import (
	"testing"

	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/engine"
	"github.com/resolvedesk/quote-api/internal/repository"
	"github.com/resolvedesk/quote-api/internal/service"
	"github.com/resolvedesk/quote-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixture wires the full service stack over an in-memory database.
type fixture struct {
	db        *gorm.DB
	org       *domain.Organization
	quoteRepo *repository.QuoteRepository
	quotes    *service.QuoteService
	approvals *service.ApprovalService
	revisions *service.RevisionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	quoteRepo := repository.NewQuoteRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	revisionRepo := repository.NewQuoteRevisionRepository(db)
	approvalRepo := repository.NewQuoteApprovalRepository(db)
	ruleRepo := repository.NewCalculationRuleRepository(db)
	profileRepo := repository.NewRateProfileRepository(db)
	userPermissionRepo := repository.NewUserPermissionRepository(db, log)

	resolver := engine.NewResolver(ruleRepo, profileRepo, log)
	permissions := service.NewPermissionService(userPermissionRepo, log)
	guard := service.NewVisibilityGuard(permissions, log)
	revisions := service.NewRevisionService(revisionRepo, quoteRepo, guard, permissions, log)
	quotes := service.NewQuoteService(quoteRepo, ticketRepo, revisionRepo, resolver, guard, permissions, revisions, db, log)
	approvals := service.NewApprovalService(approvalRepo, quoteRepo, guard, permissions, db, log)

	return &fixture{
		db:        db,
		org:       testutil.CreateTestOrganization(t, db),
		quoteRepo: quoteRepo,
		quotes:    quotes,
		approvals: approvals,
		revisions: revisions,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
