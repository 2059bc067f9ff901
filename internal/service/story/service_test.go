package story

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/constants"
	"pulse_chat_server/pkg/errorx"
)

type fakeStoryRepo struct {
	mu      sync.Mutex
	nextID  uint
	stories map[uint]*model.Story
	views   map[[2]uint]*model.StoryView
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{
		stories: make(map[uint]*model.Story),
		views:   make(map[[2]uint]*model.StoryView),
	}
}

func (r *fakeStoryRepo) Create(ctx context.Context, story *model.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	story.ID = r.nextID
	story.CreatedAt = time.Now().UTC()
	r.stories[story.ID] = story
	return nil
}

func (r *fakeStoryRepo) FindByID(ctx context.Context, id uint) (*model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "story not found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoryRepo) CreateView(ctx context.Context, view *model.StoryView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{view.StoryID, view.ViewerID}
	if _, ok := r.views[key]; ok {
		return nil // duplicate absorbed
	}
	r.views[key] = view
	return nil
}

func (r *fakeStoryRepo) CountViews(ctx context.Context, storyID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key := range r.views {
		if key[0] == storyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeStoryRepo) FindActive(ctx context.Context, now time.Time) ([]model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Story
	for _, s := range r.stories {
		if now.Before(s.ExpiresAt) {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return &model.User{Model: gorm.Model{ID: id}, Username: "author"}, nil
}
func (fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}
func (fakeUserRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	return nil, nil
}
func (fakeUserRepo) FindOnlineExcept(ctx context.Context, excludeID uint) ([]model.User, error) {
	return nil, nil
}
func (fakeUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (fakeUserRepo) SetPresence(ctx context.Context, id uint, online bool, at time.Time) error {
	return nil
}

func newFixture(t *testing.T) (*Service, *fakeStoryRepo, *time.Time) {
	t.Helper()
	repo := newFakeStoryRepo()
	svc := NewService(repo, fakeUserRepo{})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, &now
}

func TestCreateSetsLifetime(t *testing.T) {
	svc, repo, now := newFixture(t)
	rsp, err := svc.Create(context.Background(), 1, &request.CreateStoryRequest{Content: "hi"})
	require.NoError(t, err)

	stored := repo.stories[rsp.StoryID]
	assert.Equal(t, now.Add(constants.STORY_LIFETIME), stored.ExpiresAt)
	assert.Equal(t, model.VisibilityEveryone, stored.Visibility)
	assert.Equal(t, int64(0), rsp.ViewCount)
}

func TestCreateRequiresContentOrMedia(t *testing.T) {
	svc, _, _ := newFixture(t)
	_, err := svc.Create(context.Background(), 1, &request.CreateStoryRequest{})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestFeedExcludesExpired(t *testing.T) {
	svc, _, now := newFixture(t)
	ctx := context.Background()
	fresh, err := svc.Create(ctx, 1, &request.CreateStoryRequest{Content: "fresh"})
	require.NoError(t, err)

	// Advance just short of the boundary: still visible.
	*now = now.Add(constants.STORY_LIFETIME - time.Second)
	feed, err := svc.Feed(ctx, 2)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, fresh.StoryID, feed[0].StoryID)

	// At the boundary the story is gone.
	*now = now.Add(time.Second)
	feed, err = svc.Feed(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestViewExpiredStoryIsNotFound(t *testing.T) {
	svc, _, now := newFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, 1, &request.CreateStoryRequest{Content: "x"})
	require.NoError(t, err)

	*now = now.Add(constants.STORY_LIFETIME + time.Minute)
	_, err = svc.View(ctx, 2, created.StoryID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestRepeatedViewsCountOnce(t *testing.T) {
	svc, repo, _ := newFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, 1, &request.CreateStoryRequest{Content: "x"})
	require.NoError(t, err)

	rsp, err := svc.View(ctx, 2, created.StoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rsp.ViewCount)

	rsp, err = svc.View(ctx, 2, created.StoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rsp.ViewCount, "same viewer counts once")
	assert.Len(t, repo.views, 1)

	rsp, err = svc.View(ctx, 3, created.StoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rsp.ViewCount)
}

func TestAuthorViewDoesNotCount(t *testing.T) {
	svc, repo, _ := newFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, 1, &request.CreateStoryRequest{Content: "x"})
	require.NoError(t, err)

	rsp, err := svc.View(ctx, 1, created.StoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rsp.ViewCount)
	assert.Empty(t, repo.views)
}
