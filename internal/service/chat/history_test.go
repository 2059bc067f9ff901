package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pulse_chat_server/internal/dto/event"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/errorx"
)

// fakeCache is a synchronous in-memory CacheService; SubmitTask runs
// inline so tests observe cache effects immediately.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	sets map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data: make(map[string]string),
		sets: make(map[string]map[string]struct{}),
	}
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *fakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", errorx.New(errorx.CodeNotFound, "cache miss")
	}
	return v, nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

func (c *fakeCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	return nil, nil
}

func (c *fakeCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

func (c *fakeCache) SubmitTask(action func()) { action() }

func TestHistoryDirectCachesAndInvalidates(t *testing.T) {
	users := newFakeUserRepo(
		&model.User{Model: gorm.Model{ID: 1}, Username: "alice"},
		&model.User{Model: gorm.Model{ID: 2}, Username: "bob"},
	)
	messages := newFakeMessageRepo()
	cache := newFakeCache()
	guard := NewGuard(newFakeMemberRepo(), newFakeBlockRepo())
	registry := NewRoomRegistry()
	pipeline := NewMessagePipeline(messages, users, guard, registry, cache)
	history := NewHistory(messages, users, guard, cache)
	ctx := context.Background()

	require.NoError(t, pipeline.Deliver(ctx, Sender{ID: 1, Name: "alice"},
		&event.SendMessageRequest{Content: "first", RecipientID: uintPtr(2)}))

	got, err := history.Direct(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "alice", got[0].SenderName)

	// The listing is now cached; both orderings hit the same key.
	cached, ok := cache.data[messageListKey(1, 2)]
	require.True(t, ok)
	assert.NotEmpty(t, cached)
	again, err := history.Direct(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	// A new message invalidates the cache so the next read sees it.
	require.NoError(t, pipeline.Deliver(ctx, Sender{ID: 2, Name: "bob"},
		&event.SendMessageRequest{Content: "second", RecipientID: uintPtr(1)}))
	_, ok = cache.data[messageListKey(1, 2)]
	assert.False(t, ok, "delivery must invalidate the cached listing")

	got, err = history.Direct(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestHistoryGroupRequiresMembership(t *testing.T) {
	users := newFakeUserRepo(&model.User{Model: gorm.Model{ID: 1}, Username: "alice"})
	messages := newFakeMessageRepo()
	members := newFakeMemberRepo()
	guard := NewGuard(members, newFakeBlockRepo())
	history := NewHistory(messages, users, guard, nil)
	ctx := context.Background()

	_, err := history.Group(ctx, 1, 10)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	members.add(1, 10, model.RoleMember)
	got, err := history.Group(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
