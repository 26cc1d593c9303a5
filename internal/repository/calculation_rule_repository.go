package repository

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/domain"
	"gorm.io/gorm"
)

// CalculationRuleRepository handles database operations for calculation rules
type CalculationRuleRepository struct {
	db *gorm.DB
}

// NewCalculationRuleRepository creates a new calculation rule repository
func NewCalculationRuleRepository(db *gorm.DB) *CalculationRuleRepository {
	return &CalculationRuleRepository{db: db}
}

// ListActiveOrdered returns all active rules ordered by priority_order
// ascending. Rule matching depends on this order.
func (r *CalculationRuleRepository) ListActiveOrdered(ctx context.Context) ([]domain.CalculationRule, error) {
	var rules []domain.CalculationRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority_order ASC").
		Find(&rules).Error
	return rules, err
}

// GetByID returns a rule by id
func (r *CalculationRuleRepository) GetByID(ctx context.Context, id domain.RuleID) (*domain.CalculationRule, error) {
	var rule domain.CalculationRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
