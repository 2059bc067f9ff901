package model

import (
	"time"

	"gorm.io/gorm"
)

// Story is an ephemeral post with a fixed 24h lifetime.
type Story struct {
	gorm.Model
	UserID    uint      `gorm:"column:user_id;index;not null"`
	Content   string    `gorm:"column:content;type:text"`
	MediaURL  string    `gorm:"column:media_url;type:varchar(255)"`
	MediaType string    `gorm:"column:media_type;type:varchar(20)"` // image, video
	ExpiresAt time.Time `gorm:"column:expires_at;index;not null"`

	// Visibility: everyone, contacts or nobody.
	Visibility string `gorm:"column:visibility;type:varchar(20);default:everyone"`
}

func (Story) TableName() string {
	return "stories"
}

// IsExpired reports whether the story has passed its 24h lifetime.
func (s *Story) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
