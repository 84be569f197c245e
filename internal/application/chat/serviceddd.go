package chat

import (
	"context"
	"time"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/application/chat/usecases"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/domain/notification"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/services/mention"
)

type ServiceDDD struct {
	logger logger.Interface

	listMembers            *usecases.ListMembersUseCase
	listConversations      *usecases.ListConversationsUseCase
	createConversation     *usecases.CreateConversationUseCase
	deleteConversation     *usecases.DeleteConversationUseCase
	listMessages           *usecases.ListMessagesUseCase
	sendMessage            *usecases.SendMessageUseCase
	getConversationSummary *usecases.GetConversationSummaryUseCase
}

// Options tunes side effects of the chat service.
type Options struct {
	NotifyOnMessage bool
}

func NewServiceDDD(
	memberRepo cabinet.MemberRepository,
	conversationRepo conversation.Repository,
	messageRepo message.Repository,
	notificationRepo notification.Repository,
	policy cabinet.PolicyEnforcer,
	publisher usecases.RealtimePublisher,
	tx usecases.TransactionRunner,
	mentions mention.Service,
	opts Options,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		logger: logger,

		listMembers:            usecases.NewListMembersUseCase(memberRepo, logger),
		listConversations:      usecases.NewListConversationsUseCase(conversationRepo, logger),
		createConversation:     usecases.NewCreateConversationUseCase(conversationRepo, memberRepo, logger),
		deleteConversation:     usecases.NewDeleteConversationUseCase(conversationRepo, messageRepo, policy, tx, logger),
		listMessages:           usecases.NewListMessagesUseCase(messageRepo, memberRepo, conversationRepo, mentions, logger),
		sendMessage:            usecases.NewSendMessageUseCase(messageRepo, notificationRepo, memberRepo, conversationRepo, mentions, publisher, tx, opts.NotifyOnMessage, logger),
		getConversationSummary: usecases.NewGetConversationSummaryUseCase(messageRepo, memberRepo, conversationRepo, logger),
	}
}

func (s *ServiceDDD) ListMembers(ctx context.Context, cabinetID string) ([]*dto.MemberResponse, error) {
	return s.listMembers.Execute(ctx, cabinetID)
}

func (s *ServiceDDD) ListConversations(ctx context.Context, cabinetID, userID string) ([]*dto.ConversationResponse, error) {
	return s.listConversations.Execute(ctx, cabinetID, userID)
}

func (s *ServiceDDD) CreateConversation(ctx context.Context, cabinetID, creatorID string, req dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	return s.createConversation.Execute(ctx, cabinetID, creatorID, req)
}

func (s *ServiceDDD) DeleteConversation(ctx context.Context, actor *cabinet.Member, conversationID string) error {
	return s.deleteConversation.Execute(ctx, actor, conversationID)
}

func (s *ServiceDDD) ListMessages(ctx context.Context, cabinetID, userID, key string) ([]*dto.MessageResponse, error) {
	return s.listMessages.Execute(ctx, cabinetID, userID, key)
}

func (s *ServiceDDD) SendMessage(ctx context.Context, cabinetID, senderID, key string, req dto.SendMessageRequest) (*dto.MessageResponse, error) {
	return s.sendMessage.Execute(ctx, cabinetID, senderID, key, req)
}

func (s *ServiceDDD) GetConversationSummary(ctx context.Context, cabinetID, userID, key string, since *time.Time) (*dto.SummaryResponse, error) {
	return s.getConversationSummary.Execute(ctx, cabinetID, userID, key, since)
}
