package repository_test

import (
	"testing"

	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/repository"
	"github.com/resolvedesk/quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListForTicket_OrganizationScopeAppliedInQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ownOrg := testutil.CreateTestOrganization(t, db)
	otherOrg := testutil.CreateTestOrganization(t, db)
	ticket := testutil.CreateTestTicket(t, db, ownOrg.ID)
	repo := repository.NewQuoteRepository(db)

	createQuote(t, repo, ticket.ID, 1)

	ownCtx := testutil.ContextWithActor(domain.RoleAgent, ownOrg.ID)
	quotes, err := repo.ListForTicket(ownCtx, ticket.ID)
	require.NoError(t, err)
	assert.Len(t, quotes, 1)

	// An agent from another organization gets nothing back even when the
	// query is reached directly, without the service-level guard
	foreignCtx := testutil.ContextWithActor(domain.RoleAgent, otherOrg.ID)
	quotes, err = repo.ListForTicket(foreignCtx, ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestListForTicket_ReadAllRoleCrossesOrganizations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ownOrg := testutil.CreateTestOrganization(t, db)
	otherOrg := testutil.CreateTestOrganization(t, db)
	ticket := testutil.CreateTestTicket(t, db, otherOrg.ID)
	repo := repository.NewQuoteRepository(db)

	createQuote(t, repo, ticket.ID, 1)

	leadCtx := testutil.ContextWithActor(domain.RoleSupportLead, ownOrg.ID)
	quotes, err := repo.ListForTicket(leadCtx, ticket.ID)
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
}
