package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Message types carried on the wire and stored in message_type.
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeDocument = "document"
	MessageTypeVoice    = "voice"
)

// Message is one persisted chat message, direct or group.
//
// Exactly one of RecipientID and GroupID is set; the delivery pipeline
// rejects anything else before this row is created. Uuid is the
// server-assigned snowflake id clients correlate acknowledgements with.
type Message struct {
	gorm.Model

	// Uuid is the wire id; bigint so snowflake values fit.
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null"`

	SenderID uint `gorm:"column:sender_id;index;not null"`

	// RecipientID is set for direct messages, GroupID for group
	// messages; never both, never neither.
	RecipientID *uint `gorm:"column:recipient_id;index"`
	GroupID     *uint `gorm:"column:group_id;index"`

	Content     string `gorm:"column:content;type:text"`
	MessageType string `gorm:"column:message_type;type:varchar(20);default:text"`

	// FileURL/FileName reference blob-store media for non-text types.
	FileURL  string `gorm:"column:file_url;type:varchar(255)"`
	FileName string `gorm:"column:file_name;type:varchar(255)"`

	IsEdited bool         `gorm:"column:is_edited;default:false"`
	EditedAt sql.NullTime `gorm:"column:edited_at;type:datetime"`

	DeliveredAt sql.NullTime `gorm:"column:delivered_at;type:datetime"`

	// ReadAt is written once by the recipient's first mark_read; later
	// calls leave it untouched.
	ReadAt sql.NullTime `gorm:"column:read_at;type:datetime"`
}

func (Message) TableName() string {
	return "messages"
}
