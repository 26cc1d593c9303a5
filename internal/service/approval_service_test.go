package service_test

import (
	"testing"

	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/service"
	"github.com/resolvedesk/quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createQuoteForApproval(t *testing.T, f *fixture, ticketID domain.TicketID) *domain.QuoteDTO {
	t.Helper()

	ctx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)
	quote, err := f.quotes.CreateQuote(ctx, ticketID, &domain.CreateQuoteRequest{
		EstimatedHoursMinimum: 2,
		EstimatedHoursMaximum: 10,
		HourlyRate:            50,
		QuoteEffortLevelID:    2,
	})
	require.NoError(t, err)
	return quote
}

func TestSubmit_CreatesPendingApprovalAndLinksIt(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	ctx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)

	approval, err := f.approvals.Submit(ctx, ticket.ID, quote.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ApprovalStatusPending, approval.ApprovalStatusID)
	assert.Equal(t, "pending", approval.ApprovalStatus)
	assert.Nil(t, approval.ApprovedAt)

	linked, err := f.quoteRepo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.QuoteApprovalID)
	assert.Equal(t, approval.ID, *linked.QuoteApprovalID)
}

func TestSubmit_AgainReplacesLink(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	ctx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)

	first, err := f.approvals.Submit(ctx, ticket.ID, quote.ID)
	require.NoError(t, err)
	second, err := f.approvals.Submit(ctx, ticket.ID, quote.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	linked, err := f.quoteRepo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.QuoteApprovalID)
	assert.Equal(t, second.ID, *linked.QuoteApprovalID)
}

func TestApprove_PendingQuote(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	agentCtx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)
	leadCtx := testutil.ContextWithActor(domain.RoleSupportLead, f.org.ID)

	_, err := f.approvals.Submit(agentCtx, ticket.ID, quote.ID)
	require.NoError(t, err)

	decided, err := f.approvals.Approve(leadCtx, ticket.ID, quote.ID, "within budget")
	require.NoError(t, err)

	assert.Equal(t, domain.ApprovalStatusApproved, decided.ApprovalStatusID)
	assert.Equal(t, "approved", decided.ApprovalStatus)
	assert.Equal(t, "within budget", decided.Comment)
	require.NotNil(t, decided.ApprovedAt)

	// The decision keeps the submitter's stamp from submit time
	assert.Equal(t, "user-agent", decided.ApprovedByUserID)
	assert.Equal(t, "agent", decided.UserRole)
}

func TestApprove_AlreadyApproved(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	agentCtx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)
	leadCtx := testutil.ContextWithActor(domain.RoleSupportLead, f.org.ID)

	_, err := f.approvals.Submit(agentCtx, ticket.ID, quote.ID)
	require.NoError(t, err)
	_, err = f.approvals.Approve(leadCtx, ticket.ID, quote.ID, "")
	require.NoError(t, err)

	_, err = f.approvals.Approve(leadCtx, ticket.ID, quote.ID, "")
	assert.ErrorIs(t, err, service.ErrAlreadyApproved)
}

func TestReject_TerminalStatesAreFinal(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	agentCtx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)
	leadCtx := testutil.ContextWithActor(domain.RoleSupportLead, f.org.ID)

	_, err := f.approvals.Submit(agentCtx, ticket.ID, quote.ID)
	require.NoError(t, err)
	_, err = f.approvals.Reject(leadCtx, ticket.ID, quote.ID, "too expensive")
	require.NoError(t, err)

	// A rejected approval cannot be approved or rejected again
	_, err = f.approvals.Approve(leadCtx, ticket.ID, quote.ID, "")
	assert.ErrorIs(t, err, service.ErrNotPending)
	_, err = f.approvals.Reject(leadCtx, ticket.ID, quote.ID, "still no")
	assert.ErrorIs(t, err, service.ErrNotPending)
}

func TestApprove_WithoutSubmission(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	leadCtx := testutil.ContextWithActor(domain.RoleSupportLead, f.org.ID)

	_, err := f.approvals.Approve(leadCtx, ticket.ID, quote.ID, "")
	assert.ErrorIs(t, err, service.ErrNotPending)
}

func TestApprove_NewVersionDropsApprovalLink(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	agentCtx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)
	leadCtx := testutil.ContextWithActor(domain.RoleSupportLead, f.org.ID)

	_, err := f.approvals.Submit(agentCtx, ticket.ID, quote.ID)
	require.NoError(t, err)

	updated, err := f.quotes.UpdateQuote(agentCtx, ticket.ID, quote.ID, &domain.UpdateQuoteRequest{
		HourlyRate: floatPtr(80),
		Reason:     "rate card changed",
	})
	require.NoError(t, err)
	assert.Nil(t, updated.QuoteApprovalID)

	// The new version needs its own submission before it can be decided
	_, err = f.approvals.Approve(leadCtx, ticket.ID, updated.ID, "")
	assert.ErrorIs(t, err, service.ErrNotPending)
}

func TestApprove_AgentLacksPermission(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	agentCtx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)

	_, err := f.approvals.Submit(agentCtx, ticket.ID, quote.ID)
	require.NoError(t, err)

	_, err = f.approvals.Approve(agentCtx, ticket.ID, quote.ID, "")
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestSubmit_SupersededVersionRejected(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	quote := createQuoteForApproval(t, f, ticket.ID)
	agentCtx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)

	_, err := f.quotes.UpdateQuote(agentCtx, ticket.ID, quote.ID, &domain.UpdateQuoteRequest{
		HourlyRate: floatPtr(80),
		Reason:     "rate card changed",
	})
	require.NoError(t, err)

	_, err = f.approvals.Submit(agentCtx, ticket.ID, quote.ID)
	assert.ErrorIs(t, err, service.ErrQuoteSuperseded)
}

func TestApprove_QuoteNotFound(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	leadCtx := testutil.ContextWithActor(domain.RoleSupportLead, f.org.ID)

	_, err := f.approvals.Approve(leadCtx, ticket.ID, domain.NewQuoteID(), "")
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
}
