package http

import (
	"gorm.io/gorm"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/domain/notification"
	"cabinet/internal/infrastructure/repository"
	"cabinet/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	memberRepo       cabinet.MemberRepository
	conversationRepo conversation.Repository
	messageRepo      message.Repository
	notificationRepo notification.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		memberRepo:       repository.NewCabinetMemberRepository(db, log),
		conversationRepo: repository.NewConversationRepository(db, log),
		messageRepo:      repository.NewMessageRepository(db, log),
		notificationRepo: repository.NewNotificationRepository(db, log),
	}
}
