package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/errorx"
	"pulse_chat_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("test-secret", 15, 24)
	m.Run()
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User)}
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
	return nil, nil
}

func (r *fakeUserRepo) FindOnlineExcept(ctx context.Context, excludeID uint) ([]model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errorx.New(errorx.CodeConflict, "duplicate user")
		}
	}
	user.ID = uint(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SetPresence(ctx context.Context, id uint, online bool, at time.Time) error {
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.UserSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.UserSession)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *model.UserSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.TokenID] = session
	return nil
}

func (r *fakeSessionRepo) DeleteByTokenID(ctx context.Context, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, tokenID)
	return nil
}

type fakeTokenCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{data: make(map[string]string)}
}

func (c *fakeTokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeTokenCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *fakeTokenCache) GetOrError(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", errorx.New(errorx.CodeNotFound, "cache miss")
	}
	return v, nil
}

func (c *fakeTokenCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeTokenCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

func (c *fakeTokenCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	return nil, nil
}

func (c *fakeTokenCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

func newFixture() (*Service, *fakeUserRepo, *fakeSessionRepo, *fakeTokenCache) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	cache := newFakeTokenCache()
	return NewService(users, sessions, cache, 24*time.Hour), users, sessions, cache
}

func register(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _, _ := newFixture()
	register(t, svc)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct-horse",
	})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
}

func TestLoginIssuesWorkingTokenPair(t *testing.T) {
	svc, _, sessions, _ := newFixture()
	register(t, svc)

	rsp, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice", Password: "correct-horse", Device: "test",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rsp.AccessToken)
	assert.NotEmpty(t, rsp.RefreshToken)

	claims, err := jwt.ParseToken(rsp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, rsp.UserID, claims.UserID)
	assert.Equal(t, "access_token", claims.Subject)

	assert.Len(t, sessions.sessions, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newFixture()
	register(t, svc)

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice", Password: "wrong",
	})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))

	// Unknown users answer identically so usernames cannot be probed.
	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "mallory", Password: "wrong",
	})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))
}

func TestRefreshAndLogout(t *testing.T) {
	svc, _, sessions, _ := newFixture()
	register(t, svc)
	ctx := context.Background()

	login, err := svc.Login(ctx, &request.LoginRequest{
		Username: "alice", Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access tokens are not accepted for refresh.
	_, err = svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.AccessToken})
	assert.Equal(t, errorx.CodeUnauthenticated, errorx.GetCode(err))

	// Logout revokes the refresh token; refresh then fails.
	require.NoError(t, svc.Logout(ctx, &request.LogoutRequest{RefreshToken: login.RefreshToken}))
	assert.Empty(t, sessions.sessions)
	_, err = svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthenticated, errorx.GetCode(err))

	// Logging out twice is harmless.
	assert.NoError(t, svc.Logout(ctx, &request.LogoutRequest{RefreshToken: login.RefreshToken}))
}
