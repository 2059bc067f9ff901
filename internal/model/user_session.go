package model

import "gorm.io/gorm"

// UserSession records an issued refresh token and the device it belongs
// to, so sessions can be listed and revoked.
type UserSession struct {
	gorm.Model
	UserID     uint   `gorm:"column:user_id;index;not null"`
	TokenID    string `gorm:"column:token_id;type:varchar(64);uniqueIndex;not null"`
	DeviceInfo string `gorm:"column:device_info;type:varchar(255)"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
