package repository

import (
	"context"
	"time"

	"pulse_chat_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates the gorm-backed StoryRepository.
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *model.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return wrapDBError(err, "create story")
	}
	return nil
}

func (r *storyRepository) FindByID(ctx context.Context, id uint) (*model.Story, error) {
	var story model.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find story id=%d", id)
	}
	return &story, nil
}

// CreateView inserts a view row. The (story, viewer) unique index plus
// DoNothing makes a second view by the same viewer a silent no-op.
func (r *storyRepository) CreateView(ctx context.Context, view *model.StoryView) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(view).Error; err != nil {
		return wrapDBErrorf(err, "create story view story=%d viewer=%d", view.StoryID, view.ViewerID)
	}
	return nil
}

func (r *storyRepository) CountViews(ctx context.Context, storyID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.StoryView{}).
		Where("story_id = ?", storyID).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count story views story=%d", storyID)
	}
	return count, nil
}

func (r *storyRepository) FindActive(ctx context.Context, now time.Time) ([]model.Story, error) {
	var stories []model.Story
	if err := r.db.WithContext(ctx).Where("expires_at > ?", now).
		Order("created_at DESC").Find(&stories).Error; err != nil {
		return nil, wrapDBError(err, "find active stories")
	}
	return stories, nil
}
