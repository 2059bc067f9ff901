package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Membership roles.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

// GroupMembership links a user to a group. A user has at most one row per
// group, enforced by the composite unique index.
type GroupMembership struct {
	gorm.Model
	UserID           uint         `gorm:"column:user_id;uniqueIndex:idx_user_group;not null"`
	GroupID          uint         `gorm:"column:group_id;uniqueIndex:idx_user_group;index;not null"`
	Role             string       `gorm:"column:role;type:varchar(20);default:member"`
	IsPaid           bool         `gorm:"column:is_paid;default:false"`
	PaymentExpiresAt sql.NullTime `gorm:"column:payment_expires_at;type:datetime"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}
