// Package group implements group lifecycle and membership: creation,
// joining (with the premium gate), leaving and member listings.
package group

import (
	"context"

	"go.uber.org/zap"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/dto/respond"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/errorx"
)

// Service handles group flows.
type Service struct {
	groups  repository.GroupRepository
	members repository.GroupMemberRepository
	users   repository.UserRepository
}

// NewService wires the group service.
func NewService(groups repository.GroupRepository, members repository.GroupMemberRepository,
	users repository.UserRepository) *Service {
	return &Service{groups: groups, members: members, users: users}
}

// Create makes a group and enrolls the creator as its admin.
func (s *Service) Create(ctx context.Context, creatorID uint, req *request.CreateGroupRequest) (*respond.GroupRespond, error) {
	group := &model.Group{
		Name:         req.Name,
		Description:  req.Description,
		IsPremium:    req.IsPremium,
		PremiumPrice: req.PremiumPrice,
		MaxMembers:   req.MaxMembers,
		CreatedBy:    creatorID,
	}
	if group.MaxMembers == 0 {
		group.MaxMembers = 100
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	if err := s.members.Create(ctx, &model.GroupMembership{
		UserID:  creatorID,
		GroupID: group.ID,
		Role:    model.RoleAdmin,
	}); err != nil {
		return nil, err
	}
	zap.L().Info("group created", zap.Uint("group", group.ID), zap.Uint("creator", creatorID))
	return s.respond(ctx, group)
}

// Join enrolls a user as a member. Premium groups require payment before
// joining; full groups reject. Joining twice is a no-op.
func (s *Service) Join(ctx context.Context, userID, groupID uint) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if already, err := s.members.Exists(ctx, userID, groupID); err != nil {
		return err
	} else if already {
		return nil
	}
	if group.IsPremium {
		// Payment processing is not wired; premium groups only admit
		// members enrolled through a paid flow.
		return errorx.Newf(errorx.CodePaymentRequired,
			"group requires payment of %.2f to join", group.PremiumPrice)
	}
	memberships, err := s.members.FindByGroupID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.MaxMembers > 0 && len(memberships) >= group.MaxMembers {
		return errorx.New(errorx.CodeConflict, "group is full")
	}
	return s.members.Create(ctx, &model.GroupMembership{
		UserID:  userID,
		GroupID: groupID,
		Role:    model.RoleMember,
	})
}

// Leave removes a user's membership. The last admin cannot leave while
// other members remain.
func (s *Service) Leave(ctx context.Context, userID, groupID uint) error {
	membership, err := s.members.Find(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if membership.Role == model.RoleAdmin {
		memberships, err := s.members.FindByGroupID(ctx, groupID)
		if err != nil {
			return err
		}
		admins := 0
		for i := range memberships {
			if memberships[i].Role == model.RoleAdmin {
				admins++
			}
		}
		if admins == 1 && len(memberships) > 1 {
			return errorx.New(errorx.CodeConflict, "promote another admin before leaving")
		}
	}
	return s.members.Delete(ctx, userID, groupID)
}

// Get returns one group; membership is required to see it.
func (s *Service) Get(ctx context.Context, userID, groupID uint) (*respond.GroupRespond, error) {
	if ok, err := s.members.Exists(ctx, userID, groupID); err != nil {
		return nil, err
	} else if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "not a member of this group")
	}
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, group)
}

// Members lists a group's members with display names; callers must be
// members themselves.
func (s *Service) Members(ctx context.Context, userID, groupID uint) ([]respond.GroupMemberRespond, error) {
	if ok, err := s.members.Exists(ctx, userID, groupID); err != nil {
		return nil, err
	} else if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "not a member of this group")
	}
	memberships, err := s.members.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(memberships))
	for i := range memberships {
		ids = append(ids, memberships[i].UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].DisplayName()
	}
	out := make([]respond.GroupMemberRespond, 0, len(memberships))
	for i := range memberships {
		out = append(out, respond.GroupMemberRespond{
			UserID: memberships[i].UserID,
			Name:   names[memberships[i].UserID],
			Role:   memberships[i].Role,
		})
	}
	return out, nil
}

func (s *Service) respond(ctx context.Context, group *model.Group) (*respond.GroupRespond, error) {
	memberships, err := s.members.FindByGroupID(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return &respond.GroupRespond{
		GroupID:     group.ID,
		Name:        group.Name,
		Description: group.Description,
		IsPremium:   group.IsPremium,
		MemberCount: len(memberships),
	}, nil
}
