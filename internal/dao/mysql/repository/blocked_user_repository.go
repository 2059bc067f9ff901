package repository

import (
	"context"

	"pulse_chat_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blockedUserRepository struct {
	db *gorm.DB
}

// NewBlockedUserRepository creates the gorm-backed BlockedUserRepository.
func NewBlockedUserRepository(db *gorm.DB) BlockedUserRepository {
	return &blockedUserRepository{db: db}
}

func (r *blockedUserRepository) Create(ctx context.Context, block *model.BlockedUser) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(block).Error; err != nil {
		return wrapDBError(err, "create block")
	}
	return nil
}

func (r *blockedUserRepository) Delete(ctx context.Context, blockerID, blockedID uint) error {
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&model.BlockedUser{}).Error; err != nil {
		return wrapDBErrorf(err, "delete block blocker=%d blocked=%d", blockerID, blockedID)
	}
	return nil
}

func (r *blockedUserRepository) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.BlockedUser{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "count block blocker=%d blocked=%d", blockerID, blockedID)
	}
	return count > 0, nil
}
