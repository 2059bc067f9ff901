package repository

import (
	"context"
	"time"

	"pulse_chat_server/internal/model"
)

// UserRepository provides user rows and presence updates.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.User, error)
	// FindOnlineExcept returns users currently flagged online, excluding
	// one user (the requester of get_online_users).
	FindOnlineExcept(ctx context.Context, excludeID uint) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	// SetPresence flips the online flag and stamps last_seen in one
	// update.
	SetPresence(ctx context.Context, id uint, online bool, at time.Time) error
}

// GroupRepository provides group rows.
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	FindByID(ctx context.Context, id uint) (*model.Group, error)
}

// GroupMemberRepository provides membership rows; the authorization
// guard re-reads these on every join and send.
type GroupMemberRepository interface {
	Create(ctx context.Context, membership *model.GroupMembership) error
	Find(ctx context.Context, userID, groupID uint) (*model.GroupMembership, error)
	Exists(ctx context.Context, userID, groupID uint) (bool, error)
	Delete(ctx context.Context, userID, groupID uint) error
	FindByGroupID(ctx context.Context, groupID uint) ([]model.GroupMembership, error)
}

// MessageRepository provides message rows.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByUuid(ctx context.Context, uuid int64) (*model.Message, error)
	// MarkRead stamps read_at once; it reports false without error when
	// read_at was already set, making repeated calls idempotent.
	MarkRead(ctx context.Context, uuid int64, at time.Time) (bool, error)
	FindDirect(ctx context.Context, userOneID, userTwoID uint) ([]model.Message, error)
	FindByGroupID(ctx context.Context, groupID uint) ([]model.Message, error)
}

// StoryRepository provides story and story-view rows.
type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	FindByID(ctx context.Context, id uint) (*model.Story, error)
	// CreateView inserts a view row, silently absorbing the duplicate
	// produced by a second view from the same viewer.
	CreateView(ctx context.Context, view *model.StoryView) error
	CountViews(ctx context.Context, storyID uint) (int64, error)
	FindActive(ctx context.Context, now time.Time) ([]model.Story, error)
}

// ContactRepository provides contact-list rows.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	Exists(ctx context.Context, userID, contactID uint) (bool, error)
}

// BlockedUserRepository provides block rows consulted by the guard on
// every direct send.
type BlockedUserRepository interface {
	Create(ctx context.Context, block *model.BlockedUser) error
	Delete(ctx context.Context, blockerID, blockedID uint) error
	Exists(ctx context.Context, blockerID, blockedID uint) (bool, error)
}

// SessionRepository records issued refresh tokens.
type SessionRepository interface {
	Create(ctx context.Context, session *model.UserSession) error
	DeleteByTokenID(ctx context.Context, tokenID string) error
}
