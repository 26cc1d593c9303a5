package repository

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/domain"
	"gorm.io/gorm"
)

// RateProfileRepository handles database operations for rate profiles
type RateProfileRepository struct {
	db *gorm.DB
}

// NewRateProfileRepository creates a new rate profile repository
func NewRateProfileRepository(db *gorm.DB) *RateProfileRepository {
	return &RateProfileRepository{db: db}
}

// ListActive returns all active rate profiles in storage order
func (r *RateProfileRepository) ListActive(ctx context.Context) ([]domain.RateProfile, error) {
	var profiles []domain.RateProfile
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&profiles).Error
	return profiles, err
}

// GetByID returns a rate profile by id
func (r *RateProfileRepository) GetByID(ctx context.Context, id domain.RateProfileID) (*domain.RateProfile, error) {
	var profile domain.RateProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
