package repository

import (
	"context"
	"time"

	"pulse_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates the gorm-backed MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

func (r *messageRepository) FindByUuid(ctx context.Context, uuid int64) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&message).Error; err != nil {
		return nil, wrapDBErrorf(err, "find message uuid=%d", uuid)
	}
	return &message, nil
}

// MarkRead writes read_at only when it is still unset. The conditional
// update makes the operation idempotent without a read-modify-write race.
func (r *messageRepository) MarkRead(ctx context.Context, uuid int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("uuid = ? AND read_at IS NULL", uuid).
		Update("read_at", at)
	if res.Error != nil {
		return false, wrapDBErrorf(res.Error, "mark read uuid=%d", uuid)
	}
	return res.RowsAffected > 0, nil
}

func (r *messageRepository) FindDirect(ctx context.Context, userOneID, userTwoID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userOneID, userTwoID, userTwoID, userOneID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find direct messages user1=%d user2=%d", userOneID, userTwoID)
	}
	return messages, nil
}

func (r *messageRepository) FindByGroupID(ctx context.Context, groupID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).Where("group_id = ?", groupID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find group messages group=%d", groupID)
	}
	return messages, nil
}
