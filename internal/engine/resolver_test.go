package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRuleSource struct {
	rules []domain.CalculationRule
}

func (s *stubRuleSource) ListActiveOrdered(ctx context.Context) ([]domain.CalculationRule, error) {
	return s.rules, nil
}

type stubProfileSource struct {
	profiles []domain.RateProfile
}

func (s *stubProfileSource) ListActive(ctx context.Context) ([]domain.RateProfile, error) {
	return s.profiles, nil
}

func matchingRule(priorityOrder int, urgency float64) domain.CalculationRule {
	return domain.CalculationRule{
		ID:                        domain.NewRuleID(),
		TicketSeverityID:          2,
		BusinessImpactID:          2,
		SuggestedTicketPriorityID: 2,
		UsersImpactedMin:          10,
		UsersImpactedMax:          100,
		UrgencyMultiplier:         urgency,
		QuoteEffortLevelID:        1,
		PriorityOrder:             priorityOrder,
		IsActive:                  true,
	}
}

func testTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:               domain.NewTicketID(),
		OrganizationID:   domain.NewOrganizationID(),
		TicketTypeID:     1,
		TicketSeverityID: 2,
		BusinessImpactID: 2,
		UsersImpacted:    25,
		TicketPriorityID: 4,
	}
}

func TestResolveCalculationRule_FirstMatchWins(t *testing.T) {
	first := matchingRule(1, 1.5)
	second := matchingRule(2, 3.0)
	resolver := engine.NewResolver(
		&stubRuleSource{rules: []domain.CalculationRule{first, second}},
		&stubProfileSource{},
		zap.NewNop(),
	)

	rule, err := resolver.ResolveCalculationRule(context.Background(), testTicket())
	require.NoError(t, err)
	assert.Equal(t, first.ID, rule.ID)
}

func TestResolveCalculationRule_SkipsNonMatching(t *testing.T) {
	wrongSeverity := matchingRule(1, 2.0)
	wrongSeverity.TicketSeverityID = 4
	outOfRange := matchingRule(2, 2.0)
	outOfRange.UsersImpactedMax = 5
	match := matchingRule(3, 1.5)

	resolver := engine.NewResolver(
		&stubRuleSource{rules: []domain.CalculationRule{wrongSeverity, outOfRange, match}},
		&stubProfileSource{},
		zap.NewNop(),
	)

	rule, err := resolver.ResolveCalculationRule(context.Background(), testTicket())
	require.NoError(t, err)
	assert.Equal(t, match.ID, rule.ID)
}

func TestResolveCalculationRule_UsersImpactedBoundsInclusive(t *testing.T) {
	rule := matchingRule(1, 1.5)
	resolver := engine.NewResolver(
		&stubRuleSource{rules: []domain.CalculationRule{rule}},
		&stubProfileSource{},
		zap.NewNop(),
	)

	ticket := testTicket()
	for _, users := range []int{10, 100} {
		ticket.UsersImpacted = users
		_, err := resolver.ResolveCalculationRule(context.Background(), ticket)
		assert.NoError(t, err, "users impacted %d should match", users)
	}

	ticket.UsersImpacted = 101
	_, err := resolver.ResolveCalculationRule(context.Background(), ticket)
	assert.ErrorIs(t, err, engine.ErrNoMatchingRule)
}

func TestResolveCalculationRule_NoMatch(t *testing.T) {
	resolver := engine.NewResolver(&stubRuleSource{}, &stubProfileSource{}, zap.NewNop())

	_, err := resolver.ResolveCalculationRule(context.Background(), testTicket())
	assert.ErrorIs(t, err, engine.ErrNoMatchingRule)
}

func testProfile(from, to time.Time, baseRate float64) domain.RateProfile {
	return domain.RateProfile{
		ID:               domain.NewRateProfileID(),
		TicketTypeID:     1,
		TicketSeverityID: 2,
		BusinessImpactID: 2,
		BaseHourlyRate:   baseRate,
		Multiplier:       1.2,
		EffectiveFrom:    from,
		EffectiveTo:      to,
		IsActive:         true,
	}
}

func TestResolveRateProfile_WindowInclusive(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	resolver := engine.NewResolver(
		&stubRuleSource{},
		&stubProfileSource{profiles: []domain.RateProfile{testProfile(from, to, 40)}},
		zap.NewNop(),
	)

	for _, at := range []time.Time{from, to, from.AddDate(0, 6, 0)} {
		resolver.WithClock(func() time.Time { return at })
		_, err := resolver.ResolveRateProfile(context.Background(), testTicket())
		assert.NoError(t, err, "time %s should be covered", at)
	}

	resolver.WithClock(func() time.Time { return to.Add(time.Second) })
	_, err := resolver.ResolveRateProfile(context.Background(), testTicket())
	assert.ErrorIs(t, err, engine.ErrNoActiveRateProfile)

	resolver.WithClock(func() time.Time { return from.Add(-time.Second) })
	_, err = resolver.ResolveRateProfile(context.Background(), testTicket())
	assert.ErrorIs(t, err, engine.ErrNoActiveRateProfile)
}

func TestResolveRateProfile_FirstInOrderWins(t *testing.T) {
	now := time.Now()
	first := testProfile(now.AddDate(0, -1, 0), now.AddDate(0, 1, 0), 40)
	second := testProfile(now.AddDate(0, -1, 0), now.AddDate(0, 1, 0), 90)
	resolver := engine.NewResolver(
		&stubRuleSource{},
		&stubProfileSource{profiles: []domain.RateProfile{first, second}},
		zap.NewNop(),
	)

	profile, err := resolver.ResolveRateProfile(context.Background(), testTicket())
	require.NoError(t, err)
	assert.Equal(t, first.ID, profile.ID)
}

func TestResolveRateProfile_DimensionMismatch(t *testing.T) {
	now := time.Now()
	profile := testProfile(now.AddDate(0, -1, 0), now.AddDate(0, 1, 0), 40)
	profile.TicketTypeID = 9
	resolver := engine.NewResolver(
		&stubRuleSource{},
		&stubProfileSource{profiles: []domain.RateProfile{profile}},
		zap.NewNop(),
	)

	_, err := resolver.ResolveRateProfile(context.Background(), testTicket())
	assert.ErrorIs(t, err, engine.ErrNoActiveRateProfile)
}

func TestResolveEffortHours_DefaultRange(t *testing.T) {
	resolver := engine.NewResolver(&stubRuleSource{}, &stubProfileSource{}, zap.NewNop())
	rule := matchingRule(1, 1.5)

	min, max := resolver.ResolveEffortHours(&rule)
	assert.Equal(t, float64(engine.DefaultEffortHoursMin), min)
	assert.Equal(t, float64(engine.DefaultEffortHoursMax), max)
}
