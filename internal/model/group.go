package model

import "gorm.io/gorm"

// Group is a named multi-user conversation.
type Group struct {
	gorm.Model
	Name          string  `gorm:"column:name;type:varchar(100);not null"`
	Description   string  `gorm:"column:description;type:text"`
	GroupImageURL string  `gorm:"column:group_image_url;type:varchar(255)"`
	IsPremium     bool    `gorm:"column:is_premium;default:false"`
	PremiumPrice  float64 `gorm:"column:premium_price;default:0"`
	MaxMembers    int     `gorm:"column:max_members;default:100"`
	CreatedBy     uint    `gorm:"column:created_by;not null"`
}

func (Group) TableName() string {
	return "groups"
}
