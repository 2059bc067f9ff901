// Package auth implements account registration and the token lifecycle:
// login issues an access/refresh pair, refresh rotates the access token,
// logout revokes the refresh token server-side.
package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/dao/redis"
	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/dto/respond"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/errorx"
	"pulse_chat_server/pkg/util/jwt"
)

// refreshTokenKey is the redis key holding a live refresh-token id.
func refreshTokenKey(tokenID string) string {
	return "refresh_token_" + tokenID
}

// Service handles authentication flows.
type Service struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cache    redis.CacheService
	// refreshTTL bounds the redis record to the token lifetime.
	refreshTTL time.Duration
}

// NewService wires the auth service.
func NewService(users repository.UserRepository, sessions repository.SessionRepository,
	cache redis.CacheService, refreshTTL time.Duration) *Service {
	return &Service{users: users, sessions: sessions, cache: cache, refreshTTL: refreshTTL}
}

// Register creates an account. Duplicate usernames, emails or phone
// numbers surface as conflicts.
func (s *Service) Register(ctx context.Context, req *request.RegisterRequest) (*respond.RegisterRespond, error) {
	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		// Receipts default on; users opt out later through settings.
		ReadReceipts: true,
		ShowLastSeen: model.VisibilityEveryone,
		ShowPhone:    model.VisibilityContacts,
		ShowBio:      model.VisibilityEveryone,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInternal, "hash password")
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeUserExist, "username, email or phone already registered")
		}
		return nil, err
	}
	zap.L().Info("account registered", zap.Uint("user", user.ID), zap.String("username", user.Username))
	return &respond.RegisterRespond{UserID: user.ID, Username: user.Username}, nil
}

// Login verifies credentials and issues a token pair. The refresh token
// id is recorded in redis and mysql so it can be revoked.
func (s *Service) Login(ctx context.Context, req *request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeInvalidPassword, "invalid username or password")
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "invalid username or password")
	}

	accessToken, err := jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInternal, "sign access token")
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInternal, "sign refresh token")
	}

	if err := s.sessions.Create(ctx, &model.UserSession{
		UserID:     user.ID,
		TokenID:    tokenID,
		DeviceInfo: req.Device,
	}); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, refreshTokenKey(tokenID), "1", s.refreshTTL); err != nil {
			zap.L().Warn("cache refresh token failed", zap.Error(err))
		}
	}

	return &respond.LoginRespond{
		UserID:       user.ID,
		Username:     user.Username,
		DisplayName:  user.DisplayName(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh trades a valid, unrevoked refresh token for a new access
// token.
func (s *Service) Refresh(ctx context.Context, req *request.RefreshRequest) (*respond.RefreshRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenID == "" || claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthenticated, "not a refresh token")
	}
	if s.cache != nil {
		if _, err := s.cache.GetOrError(ctx, refreshTokenKey(claims.TokenID)); err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeUnauthenticated, "refresh token revoked or expired")
			}
			return nil, err
		}
	}
	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInternal, "sign access token")
	}
	return &respond.RefreshRespond{AccessToken: accessToken}, nil
}

// Logout revokes a refresh token. Unknown tokens succeed silently so
// logout is idempotent.
func (s *Service) Logout(ctx context.Context, req *request.LogoutRequest) error {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil
	}
	if claims.TokenID == "" {
		return nil
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, refreshTokenKey(claims.TokenID)); err != nil {
			zap.L().Warn("revoke cached refresh token failed", zap.Error(err))
		}
	}
	return s.sessions.DeleteByTokenID(ctx, claims.TokenID)
}
