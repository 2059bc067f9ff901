// Package model defines the database entities behind the persistent
// store collaborator.
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Visibility values for privacy settings.
const (
	VisibilityEveryone = "everyone"
	VisibilityContacts = "contacts"
	VisibilityNobody   = "nobody"
)

// User holds account identity, presence state and privacy settings.
// Presence fields (IsOnline, LastSeen) are owned by the presence tracker;
// everything else is profile data.
type User struct {
	gorm.Model

	Username     string `gorm:"column:username;type:varchar(64);uniqueIndex;not null"`
	Email        string `gorm:"column:email;type:varchar(120);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(256);not null"`
	FirstName    string `gorm:"column:first_name;type:varchar(64)"`
	LastName     string `gorm:"column:last_name;type:varchar(64)"`

	ProfileImageURL string `gorm:"column:profile_image_url;type:varchar(255)"`
	PhoneNumber     string `gorm:"column:phone_number;type:varchar(20);uniqueIndex"`
	Bio             string `gorm:"column:bio;type:text"`

	// Presence state, flipped only by the presence tracker.
	IsOnline bool         `gorm:"column:is_online;default:false"`
	LastSeen sql.NullTime `gorm:"column:last_seen;type:datetime"`

	IsAdmin bool `gorm:"column:is_admin;default:false"`

	// Privacy settings: who may see last-seen/phone/bio, and whether
	// this user's reads produce receipts.
	ShowLastSeen string `gorm:"column:show_last_seen;type:varchar(20);default:everyone"`
	ShowPhone    string `gorm:"column:show_phone;type:varchar(20);default:contacts"`
	ShowBio      string `gorm:"column:show_bio;type:varchar(20);default:everyone"`
	ReadReceipts bool   `gorm:"column:read_receipts;default:true"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName returns the name shown next to messages: full name if set,
// else first name, else username, else email.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	}
	return u.Email
}

// SetPassword stores the bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
