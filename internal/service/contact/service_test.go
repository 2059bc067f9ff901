package contact

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/errorx"
)

type pair struct{ a, b uint }

type fakeContactRepo struct {
	mu   sync.Mutex
	rows map[pair]struct{}
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{rows: make(map[pair]struct{})}
}

func (r *fakeContactRepo) Create(ctx context.Context, c *model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[pair{c.UserID, c.ContactID}] = struct{}{}
	return nil
}

func (r *fakeContactRepo) Exists(ctx context.Context, userID, contactID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[pair{userID, contactID}]
	return ok, nil
}

type fakeBlockRepo struct {
	mu   sync.Mutex
	rows map[pair]struct{}
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{rows: make(map[pair]struct{})}
}

func (r *fakeBlockRepo) Create(ctx context.Context, b *model.BlockedUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[pair{b.BlockerID, b.BlockedID}] = struct{}{}
	return nil
}

func (r *fakeBlockRepo) Delete(ctx context.Context, blockerID, blockedID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, pair{blockerID, blockedID})
	return nil
}

func (r *fakeBlockRepo) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[pair{blockerID, blockedID}]
	return ok, nil
}

// fakeUserRepo knows users 1..10 and nobody else.
type fakeUserRepo struct{}

func (fakeUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 || id > 10 {
		return nil, errorx.New(errorx.CodeNotFound, "user not found")
	}
	return &model.User{Model: gorm.Model{ID: id}, Username: "user"}, nil
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

func newFixture() (*Service, *fakeBlockRepo) {
	blocks := newFakeBlockRepo()
	return NewService(newFakeContactRepo(), blocks, fakeUserRepo{}), blocks
}

func TestAddContact(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 2))
	ok, err := svc.IsContact(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// Contacts are one-directional until the other side adds back.
	ok, err = svc.IsContact(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Adding again is harmless.
	assert.NoError(t, svc.Add(ctx, 1, 2))
}

func TestAddRejectsSelfAndUnknown(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	err := svc.Add(ctx, 1, 1)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	err = svc.Add(ctx, 1, 99)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestBlockAndUnblock(t *testing.T) {
	svc, blocks := newFixture()
	ctx := context.Background()

	require.NoError(t, svc.Block(ctx, 1, 2))
	ok, err := blocks.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// Blocking twice is a no-op, not an error.
	assert.NoError(t, svc.Block(ctx, 1, 2))

	require.NoError(t, svc.Unblock(ctx, 1, 2))
	ok, err = blocks.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	// Unblocking someone who was never blocked is also a no-op.
	assert.NoError(t, svc.Unblock(ctx, 1, 5))
}

func TestBlockRejectsSelf(t *testing.T) {
	svc, _ := newFixture()
	err := svc.Block(context.Background(), 3, 3)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}
