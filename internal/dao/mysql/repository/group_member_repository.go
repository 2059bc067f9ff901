package repository

import (
	"context"

	"pulse_chat_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository creates the gorm-backed GroupMemberRepository.
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// Create inserts a membership row. A duplicate (user, group) insert is
// absorbed: the constraint guarantees at most one row per pair.
func (r *groupMemberRepository) Create(ctx context.Context, membership *model.GroupMembership) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(membership).Error; err != nil {
		return wrapDBError(err, "create group membership")
	}
	return nil
}

func (r *groupMemberRepository) Find(ctx context.Context, userID, groupID uint) (*model.GroupMembership, error) {
	var membership model.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		First(&membership).Error; err != nil {
		return nil, wrapDBErrorf(err, "find membership user=%d group=%d", userID, groupID)
	}
	return &membership, nil
}

func (r *groupMemberRepository) Exists(ctx context.Context, userID, groupID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.GroupMembership{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "count membership user=%d group=%d", userID, groupID)
	}
	return count > 0, nil
}

func (r *groupMemberRepository) Delete(ctx context.Context, userID, groupID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Delete(&model.GroupMembership{}).Error; err != nil {
		return wrapDBErrorf(err, "delete membership user=%d group=%d", userID, groupID)
	}
	return nil
}

func (r *groupMemberRepository) FindByGroupID(ctx context.Context, groupID uint) ([]model.GroupMembership, error) {
	var memberships []model.GroupMembership
	if err := r.db.WithContext(ctx).Where("group_id = ?", groupID).
		Find(&memberships).Error; err != nil {
		return nil, wrapDBErrorf(err, "find memberships group=%d", groupID)
	}
	return memberships, nil
}
