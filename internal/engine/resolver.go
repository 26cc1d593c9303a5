package engine

import (
	"context"
	"errors"
	"time"

	"github.com/resolvedesk/quote-api/internal/domain"
	"go.uber.org/zap"
)

var (
	// ErrNoMatchingRule is returned when no active calculation rule covers
	// the ticket's severity, impact and impacted-user count
	ErrNoMatchingRule = errors.New("no matching calculation rule")

	// ErrNoActiveRateProfile is returned when no rate profile covers the
	// ticket's type/severity/impact at the current time
	ErrNoActiveRateProfile = errors.New("no active rate profile")
)

// Fallback effort range used until the per-effort-level lookup is configured.
const (
	DefaultEffortHoursMin = 1
	DefaultEffortHoursMax = 8
)

// RuleSource lists active calculation rules ordered by priority_order
// ascending.
type RuleSource interface {
	ListActiveOrdered(ctx context.Context) ([]domain.CalculationRule, error)
}

// RateProfileSource lists active rate profiles in storage order.
type RateProfileSource interface {
	ListActive(ctx context.Context) ([]domain.RateProfile, error)
}

// Resolver finds the calculation rule and rate profile for a ticket.
type Resolver struct {
	rules    RuleSource
	profiles RateProfileSource
	now      func() time.Time
	logger   *zap.Logger
}

// NewResolver creates a resolver over the given rule and profile sources.
func NewResolver(rules RuleSource, profiles RateProfileSource, logger *zap.Logger) *Resolver {
	return &Resolver{
		rules:    rules,
		profiles: profiles,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the resolver's clock. Used by tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// ResolveCalculationRule returns the first active rule, in priority_order
// ascending, matching the ticket's severity, impact and users-impacted count.
// Ordering is the tie-break between equally matching rules, not a score.
func (r *Resolver) ResolveCalculationRule(ctx context.Context, ticket *domain.Ticket) (*domain.CalculationRule, error) {
	rules, err := r.rules.ListActiveOrdered(ctx)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		rule := &rules[i]
		if rule.Matches(ticket.TicketSeverityID, ticket.BusinessImpactID, ticket.UsersImpacted) {
			return rule, nil
		}
	}

	r.logger.Debug("no calculation rule matched ticket",
		zap.String("ticket_id", ticket.ID.String()),
		zap.Int("severity_id", ticket.TicketSeverityID),
		zap.Int("impact_id", ticket.BusinessImpactID),
		zap.Int("users_impacted", ticket.UsersImpacted))
	return nil, ErrNoMatchingRule
}

// ResolveRateProfile returns the active profile matching the ticket's type,
// severity and impact whose effective window covers now (inclusive on both
// ends). When several profiles match, the first in result order wins; no
// further tie-break is defined.
func (r *Resolver) ResolveRateProfile(ctx context.Context, ticket *domain.Ticket) (*domain.RateProfile, error) {
	profiles, err := r.profiles.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	for i := range profiles {
		p := &profiles[i]
		if p.TicketTypeID == ticket.TicketTypeID &&
			p.TicketSeverityID == ticket.TicketSeverityID &&
			p.BusinessImpactID == ticket.BusinessImpactID &&
			p.CoversAt(now) {
			return p, nil
		}
	}

	r.logger.Debug("no rate profile covers ticket",
		zap.String("ticket_id", ticket.ID.String()),
		zap.Int("type_id", ticket.TicketTypeID),
		zap.Int("severity_id", ticket.TicketSeverityID),
		zap.Int("impact_id", ticket.BusinessImpactID))
	return nil, ErrNoActiveRateProfile
}

// ResolveEffortHours returns the configured hour range for the rule's effort
// level. The per-level lookup is not wired yet; every rule currently gets the
// default range.
func (r *Resolver) ResolveEffortHours(rule *domain.CalculationRule) (min, max float64) {
	return DefaultEffortHoursMin, DefaultEffortHoursMax
}
