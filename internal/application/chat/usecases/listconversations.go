package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/shared/logger"
)

type ListConversationsUseCase struct {
	conversationRepo conversation.Repository
	logger           logger.Interface
}

func NewListConversationsUseCase(conversationRepo conversation.Repository, logger logger.Interface) *ListConversationsUseCase {
	return &ListConversationsUseCase{
		conversationRepo: conversationRepo,
		logger:           logger,
	}
}

// Execute lists the group conversations userID belongs to.
func (uc *ListConversationsUseCase) Execute(ctx context.Context, cabinetID, userID string) ([]*dto.ConversationResponse, error) {
	conversations, err := uc.conversationRepo.ListByMember(ctx, cabinetID, userID)
	if err != nil {
		uc.logger.Errorw("failed to list conversations", "cabinet_id", cabinetID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return dto.ToConversationResponses(conversations), nil
}
