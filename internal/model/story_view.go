package model

import (
	"time"

	"gorm.io/gorm"
)

// StoryView records one viewer having seen one story. The composite
// unique index makes repeated views by the same viewer a no-op.
type StoryView struct {
	gorm.Model
	StoryID  uint      `gorm:"column:story_id;uniqueIndex:idx_story_viewer;not null"`
	ViewerID uint      `gorm:"column:viewer_id;uniqueIndex:idx_story_viewer;not null"`
	ViewedAt time.Time `gorm:"column:viewed_at;not null"`
}

func (StoryView) TableName() string {
	return "story_views"
}
