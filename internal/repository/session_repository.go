package repository

import (
	"context"
	"time"

	"github.com/resolvedesk/quote-api/internal/domain"
	"gorm.io/gorm"
)

// SessionRepository handles database operations for API sessions
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID returns a session by id
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteExpired removes all sessions whose expiry is at or before the cutoff
func (r *SessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", cutoff).
		Delete(&domain.Session{})
	return result.RowsAffected, result.Error
}
