package service_test

import (
	"testing"

	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/service"
	"github.com/resolvedesk/quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_MultipleChangedFields(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	ctx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)

	first, err := f.quotes.CreateQuote(ctx, ticket.ID, &domain.CreateQuoteRequest{
		EstimatedHoursMinimum: 2,
		EstimatedHoursMaximum: 10,
		HourlyRate:            50,
		QuoteEffortLevelID:    2,
	})
	require.NoError(t, err)

	updated, err := f.quotes.UpdateQuote(ctx, ticket.ID, first.ID, &domain.UpdateQuoteRequest{
		EstimatedHoursMaximum:  floatPtr(12),
		HourlyRate:             floatPtr(80),
		QuoteConfidenceLevelID: intPtr(3),
		Reason:                 "scope grew",
	})
	require.NoError(t, err)

	history, err := f.revisions.History(ctx, ticket.ID, updated.ID)
	require.NoError(t, err)
	require.Len(t, history.Revisions, 3)

	byField := make(map[string]domain.QuoteRevisionDTO)
	for _, rev := range history.Revisions {
		byField[rev.FieldName] = rev
		assert.Equal(t, "scope grew", rev.Reason)
		assert.Equal(t, updated.ID, rev.QuoteID)
	}

	assert.Equal(t, "10", byField["estimated_hours_maximum"].OldValue)
	assert.Equal(t, "12", byField["estimated_hours_maximum"].NewValue)
	assert.Equal(t, "50", byField["hourly_rate"].OldValue)
	assert.Equal(t, "80", byField["hourly_rate"].NewValue)
	// Nil confidence level stringifies to empty
	assert.Equal(t, "", byField["quote_confidence_level_id"].OldValue)
	assert.Equal(t, "3", byField["quote_confidence_level_id"].NewValue)
}

func TestHistory_SupersededVersionStaysReadable(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	ctx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)

	first, err := f.quotes.CreateQuote(ctx, ticket.ID, &domain.CreateQuoteRequest{
		EstimatedHoursMinimum: 2,
		EstimatedHoursMaximum: 10,
		HourlyRate:            50,
		QuoteEffortLevelID:    2,
	})
	require.NoError(t, err)
	second, err := f.quotes.UpdateQuote(ctx, ticket.ID, first.ID, &domain.UpdateQuoteRequest{
		HourlyRate: floatPtr(80),
		Reason:     "first bump",
	})
	require.NoError(t, err)
	_, err = f.quotes.UpdateQuote(ctx, ticket.ID, second.ID, &domain.UpdateQuoteRequest{
		HourlyRate: floatPtr(90),
		Reason:     "second bump",
	})
	require.NoError(t, err)

	// The middle version is soft-deleted but its audit rows remain readable
	history, err := f.revisions.History(ctx, ticket.ID, second.ID)
	require.NoError(t, err)
	require.Len(t, history.Revisions, 1)
	assert.Equal(t, "first bump", history.Revisions[0].Reason)
}

func TestHistory_QuoteNotFound(t *testing.T) {
	f := newFixture(t)
	ticket := testutil.CreateTestTicket(t, f.db, f.org.ID)
	ctx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)

	_, err := f.revisions.History(ctx, ticket.ID, domain.NewQuoteID())
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
}

func TestHistory_ForeignOrganizationForbidden(t *testing.T) {
	f := newFixture(t)
	otherOrg := testutil.CreateTestOrganization(t, f.db)
	ticket := testutil.CreateTestTicket(t, f.db, otherOrg.ID)
	ownerCtx := testutil.ContextWithActor(domain.RoleAgent, otherOrg.ID)

	quote, err := f.quotes.CreateQuote(ownerCtx, ticket.ID, &domain.CreateQuoteRequest{
		EstimatedHoursMinimum: 1,
		EstimatedHoursMaximum: 2,
		HourlyRate:            50,
		QuoteEffortLevelID:    2,
	})
	require.NoError(t, err)

	agentCtx := testutil.ContextWithActor(domain.RoleAgent, f.org.ID)
	_, err = f.revisions.History(agentCtx, ticket.ID, quote.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}
