package repository

import (
	"context"
	"time"

	"github.com/resolvedesk/quote-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserPermissionRepository handles database operations for permission overrides
type UserPermissionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserPermissionRepository creates a new user permission repository
func NewUserPermissionRepository(db *gorm.DB, logger *zap.Logger) *UserPermissionRepository {
	return &UserPermissionRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID returns all unexpired permission overrides for a user
func (r *UserPermissionRepository) GetByUserID(ctx context.Context, userID string) ([]domain.UserPermission, error) {
	var perms []domain.UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// GetPermissionOverride returns the unexpired override for one permission,
// or nil when no override exists
func (r *UserPermissionRepository) GetPermissionOverride(ctx context.Context, userID string, permission domain.PermissionType) (*domain.UserPermission, error) {
	var perm domain.UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND permission = ?", userID, permission).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		First(&perm).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

// DeleteExpiredOverrides removes expired permission overrides
func (r *UserPermissionRepository) DeleteExpiredOverrides(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&domain.UserPermission{})
	return result.RowsAffected, result.Error
}
