package chat

import (
	"context"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/pkg/errorx"
)

// Guard answers the authorization questions of the realtime path. Every
// check re-reads current rows so revoked memberships and fresh blocks
// take effect on the next event, not the next connection.
type Guard struct {
	members repository.GroupMemberRepository
	blocks  repository.BlockedUserRepository
}

// NewGuard builds a guard over membership and block storage.
func NewGuard(members repository.GroupMemberRepository, blocks repository.BlockedUserRepository) *Guard {
	return &Guard{members: members, blocks: blocks}
}

// CanJoinGroup reports whether a user may subscribe to a group room.
func (g *Guard) CanJoinGroup(ctx context.Context, userID, groupID uint) error {
	ok, err := g.members.Exists(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return errorx.New(errorx.CodeUnauthorized, "not authorized for this room")
	}
	return nil
}

// CanSendToGroup reports whether a user may post into a group. Same rule
// as joining; membership is the only gate.
func (g *Guard) CanSendToGroup(ctx context.Context, userID, groupID uint) error {
	return g.CanJoinGroup(ctx, userID, groupID)
}

// CanSendDirect reports whether a sender may message a recipient. A
// block held by the recipient rejects the send; the error message stays
// generic so the sender cannot probe who blocked them.
func (g *Guard) CanSendDirect(ctx context.Context, senderID, recipientID uint) error {
	blocked, err := g.blocks.Exists(ctx, recipientID, senderID)
	if err != nil {
		return err
	}
	if blocked {
		return errorx.New(errorx.CodeUnauthorized, "message could not be delivered")
	}
	return nil
}
