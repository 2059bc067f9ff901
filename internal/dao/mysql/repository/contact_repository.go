package repository

import (
	"context"

	"pulse_chat_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates the gorm-backed ContactRepository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(contact).Error; err != nil {
		return wrapDBError(err, "create contact")
	}
	return nil
}

func (r *contactRepository) Exists(ctx context.Context, userID, contactID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Contact{}).
		Where("user_id = ? AND contact_id = ?", userID, contactID).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "count contact user=%d contact=%d", userID, contactID)
	}
	return count > 0, nil
}
