package service

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/repository"
	"go.uber.org/zap"
)

// PermissionService handles permission checking with database overrides
type PermissionService struct {
	userPermissionRepo *repository.UserPermissionRepository
	logger             *zap.Logger
}

// NewPermissionService creates a new permission service
func NewPermissionService(
	userPermissionRepo *repository.UserPermissionRepository,
	logger *zap.Logger,
) *PermissionService {
	return &PermissionService{
		userPermissionRepo: userPermissionRepo,
		logger:             logger,
	}
}

// CheckPermission checks if an actor has a specific permission.
// This considers: 1) Admin status, 2) Permission overrides, 3) Role defaults
func (s *PermissionService) CheckPermission(ctx context.Context, actor *auth.ActorContext, permission domain.PermissionType) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}

	override, err := s.userPermissionRepo.GetPermissionOverride(ctx, actor.UserID, permission)
	if err != nil {
		s.logger.Error("failed to check permission override",
			zap.String("user_id", actor.UserID),
			zap.String("permission", string(permission)),
			zap.Error(err))
		// Fall back to role-based check on error
		return actor.HasRolePermission(permission), nil
	}

	if override != nil {
		return override.IsGranted, nil
	}

	return actor.HasRolePermission(permission), nil
}

// RequirePermission returns ErrPermissionDenied if the actor lacks the permission
func (s *PermissionService) RequirePermission(ctx context.Context, actor *auth.ActorContext, permission domain.PermissionType) error {
	hasPermission, err := s.CheckPermission(ctx, actor, permission)
	if err != nil {
		return err
	}
	if !hasPermission {
		return ErrPermissionDenied
	}
	return nil
}

// GetEffectivePermissions returns all permissions an actor has, role defaults
// merged with unexpired overrides
func (s *PermissionService) GetEffectivePermissions(ctx context.Context, actor *auth.ActorContext) ([]domain.PermissionType, error) {
	permissions := make(map[domain.PermissionType]bool)
	for _, perm := range allPermissions() {
		if actor.HasRolePermission(perm) {
			permissions[perm] = true
		}
	}

	overrides, err := s.userPermissionRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("failed to get permission overrides",
			zap.String("user_id", actor.UserID),
			zap.Error(err))
		return mapKeysToSlice(permissions), nil
	}

	for _, override := range overrides {
		if override.IsGranted {
			permissions[override.Permission] = true
		} else {
			delete(permissions, override.Permission)
		}
	}

	return mapKeysToSlice(permissions), nil
}

// CleanupExpiredOverrides removes expired permission overrides
func (s *PermissionService) CleanupExpiredOverrides(ctx context.Context) (int64, error) {
	count, err := s.userPermissionRepo.DeleteExpiredOverrides(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info("deleted expired permission overrides", zap.Int64("count", count))
	}
	return count, nil
}

func allPermissions() []domain.PermissionType {
	return []domain.PermissionType{
		domain.PermissionQuotesRead, domain.PermissionQuotesCreate, domain.PermissionQuotesUpdate,
		domain.PermissionQuotesApprove, domain.PermissionQuotesReject, domain.PermissionQuotesReadAll,
		domain.PermissionTicketsRead, domain.PermissionTicketsReadAll,
	}
}

func mapKeysToSlice(m map[domain.PermissionType]bool) []domain.PermissionType {
	result := make([]domain.PermissionType, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}
