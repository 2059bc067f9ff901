package repository

import (
	"context"

	"pulse_chat_server/internal/model"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates the gorm-backed SessionRepository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.UserSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return wrapDBError(err, "create user session")
	}
	return nil
}

func (r *sessionRepository) DeleteByTokenID(ctx context.Context, tokenID string) error {
	if err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Delete(&model.UserSession{}).Error; err != nil {
		return wrapDBErrorf(err, "delete session token=%s", tokenID)
	}
	return nil
}
