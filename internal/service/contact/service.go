// Package contact implements the contact list and the block list. Blocks
// feed the realtime guard: while a block row exists, direct messages from
// the blocked user are rejected.
package contact

import (
	"context"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/errorx"
)

// Service handles contact and block flows.
type Service struct {
	contacts repository.ContactRepository
	blocks   repository.BlockedUserRepository
	users    repository.UserRepository
}

// NewService wires the contact service.
func NewService(contacts repository.ContactRepository, blocks repository.BlockedUserRepository,
	users repository.UserRepository) *Service {
	return &Service{contacts: contacts, blocks: blocks, users: users}
}

// Add puts a user on the caller's contact list. Adding an existing
// contact is a no-op.
func (s *Service) Add(ctx context.Context, userID, contactID uint) error {
	if userID == contactID {
		return errorx.New(errorx.CodeInvalidParam, "cannot add yourself as a contact")
	}
	if _, err := s.users.FindByID(ctx, contactID); err != nil {
		return err
	}
	return s.contacts.Create(ctx, &model.Contact{UserID: userID, ContactID: contactID})
}

// Block suppresses direct messages from the blocked user to the caller.
// Blocking twice is a no-op.
func (s *Service) Block(ctx context.Context, blockerID, blockedID uint) error {
	if blockerID == blockedID {
		return errorx.New(errorx.CodeInvalidParam, "cannot block yourself")
	}
	if _, err := s.users.FindByID(ctx, blockedID); err != nil {
		return err
	}
	return s.blocks.Create(ctx, &model.BlockedUser{BlockerID: blockerID, BlockedID: blockedID})
}

// Unblock lifts a block. Unblocking a user who was not blocked is a
// no-op.
func (s *Service) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	return s.blocks.Delete(ctx, blockerID, blockedID)
}

// IsContact reports whether contactID is on userID's list.
func (s *Service) IsContact(ctx context.Context, userID, contactID uint) (bool, error) {
	return s.contacts.Exists(ctx, userID, contactID)
}
