// Package testutil provides shared test fixtures: an in-memory database with
// the full schema and seed helpers for the core entities.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/database"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// Each call gets its own database; nothing leaks between tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "failed to open in-memory test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A shared-cache memory database disappears when its last connection
	// closes; keep one open for the lifetime of the test.
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestOrganization inserts an organization and returns it.
func CreateTestOrganization(t *testing.T, db *gorm.DB) *domain.Organization {
	t.Helper()

	org := &domain.Organization{
		ID:       domain.NewOrganizationID(),
		Name:     "Test Organization",
		IsActive: true,
	}
	require.NoError(t, db.Create(org).Error)
	return org
}

// CreateTestTicket inserts a ticket owned by the given organization. The
// dimensions match the default rule and profile created by CreateTestRule and
// CreateTestRateProfile.
func CreateTestTicket(t *testing.T, db *gorm.DB, orgID domain.OrganizationID) *domain.Ticket {
	t.Helper()

	ticket := &domain.Ticket{
		ID:               domain.NewTicketID(),
		OrganizationID:   orgID,
		TicketTypeID:     1,
		TicketSeverityID: 2,
		BusinessImpactID: 2,
		UsersImpacted:    25,
		TicketPriorityID: 4,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

// CreateTestRule inserts an active calculation rule matching severity 2,
// impact 2, 10..100 users impacted.
func CreateTestRule(t *testing.T, db *gorm.DB, priorityOrder int, urgency float64) *domain.CalculationRule {
	t.Helper()

	rule := &domain.CalculationRule{
		ID:                        domain.NewRuleID(),
		TicketSeverityID:          2,
		BusinessImpactID:          2,
		SuggestedTicketPriorityID: 2,
		UsersImpactedMin:          10,
		UsersImpactedMax:          100,
		UrgencyMultiplier:         urgency,
		QuoteEffortLevelID:        3,
		PriorityOrder:             priorityOrder,
		IsActive:                  true,
	}
	require.NoError(t, db.Create(rule).Error)
	return rule
}

// CreateTestRateProfile inserts an active rate profile for type 1, severity 2,
// impact 2, effective from a year ago to a year ahead.
func CreateTestRateProfile(t *testing.T, db *gorm.DB, baseRate, multiplier float64) *domain.RateProfile {
	t.Helper()

	now := time.Now()
	profile := &domain.RateProfile{
		ID:               domain.NewRateProfileID(),
		TicketTypeID:     1,
		TicketSeverityID: 2,
		BusinessImpactID: 2,
		BaseHourlyRate:   baseRate,
		Multiplier:       multiplier,
		EffectiveFrom:    now.AddDate(-1, 0, 0),
		EffectiveTo:      now.AddDate(1, 0, 0),
		IsActive:         true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// Actor returns an actor context for the given role and organization.
func Actor(role domain.UserRoleType, orgID domain.OrganizationID) *auth.ActorContext {
	return &auth.ActorContext{
		UserID:         "user-" + string(role),
		DisplayName:    "Test User",
		Email:          string(role) + "@example.com",
		Role:           role,
		OrganizationID: orgID,
	}
}

// ContextWithActor returns a context carrying an actor of the given role.
func ContextWithActor(role domain.UserRoleType, orgID domain.OrganizationID) context.Context {
	return auth.WithActorContext(context.Background(), Actor(role, orgID))
}
