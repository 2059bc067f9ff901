package model

import "gorm.io/gorm"

// BlockedUser suppresses message delivery from Blocked to Blocker while
// the row exists. Unique per (blocker, blocked) pair.
type BlockedUser struct {
	gorm.Model
	BlockerID uint `gorm:"column:blocker_id;uniqueIndex:idx_blocker_blocked;not null"`
	BlockedID uint `gorm:"column:blocked_id;uniqueIndex:idx_blocker_blocked;not null"`
}

func (BlockedUser) TableName() string {
	return "blocked_users"
}
