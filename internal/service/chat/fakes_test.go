package chat

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"gorm.io/gorm"

	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/errorx"
)

// In-memory repository fakes. They honor the same contracts as the gorm
// implementations (not-found codes, idempotent mark-read, duplicate
// absorption) so engine tests exercise real behavior without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "user not found")
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindOnlineExcept(ctx context.Context, excludeID uint) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.IsOnline && u.ID != excludeID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SetPresence(ctx context.Context, id uint, online bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errorx.New(errorx.CodeNotFound, "user not found")
	}
	u.IsOnline = online
	u.LastSeen = sql.NullTime{Time: at, Valid: true}
	return nil
}

type memberKey struct{ userID, groupID uint }

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[memberKey]*model.GroupMembership
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[memberKey]*model.GroupMembership)}
}

func (r *fakeMemberRepo) add(userID, groupID uint, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[memberKey{userID, groupID}] = &model.GroupMembership{
		UserID: userID, GroupID: groupID, Role: role,
	}
}

func (r *fakeMemberRepo) Create(ctx context.Context, m *model.GroupMembership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memberKey{m.UserID, m.GroupID}
	if _, ok := r.members[key]; ok {
		return nil // duplicate absorbed like ON CONFLICT DO NOTHING
	}
	r.members[key] = m
	return nil
}

func (r *fakeMemberRepo) Find(ctx context.Context, userID, groupID uint) (*model.GroupMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[memberKey{userID, groupID}]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "membership not found")
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMemberRepo) Exists(ctx context.Context, userID, groupID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[memberKey{userID, groupID}]
	return ok, nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, userID, groupID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, memberKey{userID, groupID})
	return nil
}

func (r *fakeMemberRepo) FindByGroupID(ctx context.Context, groupID uint) ([]model.GroupMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.GroupMembership
	for _, m := range r.members {
		if m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type blockKey struct{ blockerID, blockedID uint }

type fakeBlockRepo struct {
	mu     sync.Mutex
	blocks map[blockKey]struct{}
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: make(map[blockKey]struct{})}
}

func (r *fakeBlockRepo) add(blockerID, blockedID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[blockKey{blockerID, blockedID}] = struct{}{}
}

func (r *fakeBlockRepo) Create(ctx context.Context, b *model.BlockedUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[blockKey{b.BlockerID, b.BlockedID}] = struct{}{}
	return nil
}

func (r *fakeBlockRepo) Delete(ctx context.Context, blockerID, blockedID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocks, blockKey{blockerID, blockedID})
	return nil
}

func (r *fakeBlockRepo) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.blocks[blockKey{blockerID, blockedID}]
	return ok, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   uint
	messages map[int64]*model.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[int64]*model.Message)}
}

func (r *fakeMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[m.Uuid]; ok {
		return errorx.New(errorx.CodeConflict, "duplicate message id")
	}
	r.nextID++
	m.ID = r.nextID
	m.Model = gorm.Model{ID: r.nextID, CreatedAt: time.Now().UTC()}
	r.messages[m.Uuid] = m
	return nil
}

func (r *fakeMessageRepo) FindByUuid(ctx context.Context, uuid int64) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "message not found")
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, uuid int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[uuid]
	if !ok {
		return false, errorx.New(errorx.CodeNotFound, "message not found")
	}
	if m.ReadAt.Valid {
		return false, nil
	}
	m.ReadAt = sql.NullTime{Time: at, Valid: true}
	return true, nil
}

func (r *fakeMessageRepo) FindDirect(ctx context.Context, userOneID, userTwoID uint) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Message
	for _, m := range r.messages {
		if m.RecipientID == nil {
			continue
		}
		if (m.SenderID == userOneID && *m.RecipientID == userTwoID) ||
			(m.SenderID == userTwoID && *m.RecipientID == userOneID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FindByGroupID(ctx context.Context, groupID uint) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Message
	for _, m := range r.messages {
		if m.GroupID != nil && *m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	return out, nil
}
