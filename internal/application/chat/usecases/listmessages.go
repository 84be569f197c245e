package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/services/mention"
)

type ListMessagesUseCase struct {
	messageRepo message.Repository
	access      conversationAccess
	mentions    mention.Service
	logger      logger.Interface
}

func NewListMessagesUseCase(
	messageRepo message.Repository,
	memberRepo cabinet.MemberRepository,
	conversationRepo conversation.Repository,
	mentions mention.Service,
	logger logger.Interface,
) *ListMessagesUseCase {
	return &ListMessagesUseCase{
		messageRepo: messageRepo,
		access:      conversationAccess{memberRepo: memberRepo, conversationRepo: conversationRepo},
		mentions:    mentions,
		logger:      logger,
	}
}

// Execute returns the transcript of a conversation, oldest first.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, cabinetID, userID, rawKey string) ([]*dto.MessageResponse, error) {
	key, _, err := uc.access.resolve(ctx, cabinetID, userID, rawKey, false)
	if err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.ListByConversation(ctx, cabinetID, key, userID)
	if err != nil {
		uc.logger.Errorw("failed to list messages", "cabinet_id", cabinetID, "conversation", key.String(), "error", err)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	resp := dto.ToMessageResponses(messages, userID)
	for _, r := range resp {
		r.RenderedHTML = uc.mentions.RenderHTML(r.Message)
	}
	return resp, nil
}
