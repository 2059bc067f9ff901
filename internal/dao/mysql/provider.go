package mysql

import (
	"pulse_chat_server/internal/dao/mysql/repository"

	"gorm.io/gorm"
)

// Repositories aggregates every repository for injection into the
// service layer.
type Repositories struct {
	User        repository.UserRepository
	Group       repository.GroupRepository
	GroupMember repository.GroupMemberRepository
	Message     repository.MessageRepository
	Story       repository.StoryRepository
	Contact     repository.ContactRepository
	BlockedUser repository.BlockedUserRepository
	Session     repository.SessionRepository
}

// NewRepositories builds the full repository set on one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        repository.NewUserRepository(db),
		Group:       repository.NewGroupRepository(db),
		GroupMember: repository.NewGroupMemberRepository(db),
		Message:     repository.NewMessageRepository(db),
		Story:       repository.NewStoryRepository(db),
		Contact:     repository.NewContactRepository(db),
		BlockedUser: repository.NewBlockedUserRepository(db),
		Session:     repository.NewSessionRepository(db),
	}
}
