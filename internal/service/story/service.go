// Package story implements ephemeral posts: creation with a fixed 24h
// lifetime, a feed of unexpired stories, and per-viewer view tracking.
package story

import (
	"context"
	"time"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/dto/respond"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/constants"
	"pulse_chat_server/pkg/errorx"
)

// Service handles story flows. The clock is injectable so expiry
// boundaries can be tested.
type Service struct {
	stories repository.StoryRepository
	users   repository.UserRepository
	now     func() time.Time
}

// NewService wires the story service with the wall clock.
func NewService(stories repository.StoryRepository, users repository.UserRepository) *Service {
	return &Service{stories: stories, users: users, now: time.Now}
}

// Create posts a story expiring exactly one lifetime after creation. A
// story must carry content or media.
func (s *Service) Create(ctx context.Context, authorID uint, req *request.CreateStoryRequest) (*respond.StoryRespond, error) {
	if req.Content == "" && req.MediaURL == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "story needs content or media")
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = model.VisibilityEveryone
	}
	now := s.now().UTC()
	story := &model.Story{
		UserID:     authorID,
		Content:    req.Content,
		MediaURL:   req.MediaURL,
		MediaType:  req.MediaType,
		ExpiresAt:  now.Add(constants.STORY_LIFETIME),
		Visibility: visibility,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, err
	}
	return s.respond(ctx, story, 0), nil
}

// Feed returns all unexpired stories with their view counts, newest
// first as the repository orders them.
func (s *Service) Feed(ctx context.Context, viewerID uint) ([]respond.StoryRespond, error) {
	stories, err := s.stories.FindActive(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	out := make([]respond.StoryRespond, 0, len(stories))
	for i := range stories {
		views, err := s.stories.CountViews(ctx, stories[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *s.respond(ctx, &stories[i], views))
	}
	return out, nil
}

// View records that a viewer saw a story. Expired or missing stories
// both answer not-found; repeated views by the same viewer keep a single
// row.
func (s *Service) View(ctx context.Context, viewerID, storyID uint) (*respond.StoryRespond, error) {
	story, err := s.stories.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.IsExpired(s.now().UTC()) {
		return nil, errorx.New(errorx.CodeNotFound, "story not found")
	}
	if viewerID != story.UserID {
		view := &model.StoryView{
			StoryID:  storyID,
			ViewerID: viewerID,
			ViewedAt: s.now().UTC(),
		}
		if err := s.stories.CreateView(ctx, view); err != nil {
			return nil, err
		}
	}
	views, err := s.stories.CountViews(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, story, views), nil
}

func (s *Service) respond(ctx context.Context, story *model.Story, views int64) *respond.StoryRespond {
	authorName := ""
	if author, err := s.users.FindByID(ctx, story.UserID); err == nil {
		authorName = author.DisplayName()
	}
	return &respond.StoryRespond{
		StoryID:    story.ID,
		AuthorID:   story.UserID,
		AuthorName: authorName,
		Content:    story.Content,
		MediaURL:   story.MediaURL,
		MediaType:  story.MediaType,
		CreatedAt:  story.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:  story.ExpiresAt.UTC().Format(time.RFC3339),
		ViewCount:  views,
	}
}
