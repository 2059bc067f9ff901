package repository

import (
	"context"
	"time"

	"pulse_chat_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user id=%d", id)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user username=%s", username)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "find users by ids")
	}
	return users, nil
}

func (r *userRepository) FindOnlineExcept(ctx context.Context, excludeID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("is_online = ? AND id <> ?", true, excludeID).
		Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "find online users")
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) SetPresence(ctx context.Context, id uint, online bool, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"is_online": online, "last_seen": at}).Error; err != nil {
		return wrapDBErrorf(err, "set presence user=%d online=%t", id, online)
	}
	return nil
}
