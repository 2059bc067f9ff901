package model

import "gorm.io/gorm"

// Contact is a one-way contact-list entry.
type Contact struct {
	gorm.Model
	UserID    uint `gorm:"column:user_id;uniqueIndex:idx_user_contact;not null"`
	ContactID uint `gorm:"column:contact_id;uniqueIndex:idx_user_contact;not null"`
}

func (Contact) TableName() string {
	return "contacts"
}
