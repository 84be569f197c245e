package usecases

import (
	"context"
	"fmt"
	"time"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/shared/logger"
)

type GetConversationSummaryUseCase struct {
	messageRepo message.Repository
	access      conversationAccess
	logger      logger.Interface
}

func NewGetConversationSummaryUseCase(
	messageRepo message.Repository,
	memberRepo cabinet.MemberRepository,
	conversationRepo conversation.Repository,
	logger logger.Interface,
) *GetConversationSummaryUseCase {
	return &GetConversationSummaryUseCase{
		messageRepo: messageRepo,
		access:      conversationAccess{memberRepo: memberRepo, conversationRepo: conversationRepo},
		logger:      logger,
	}
}

// Execute reports whether the conversation has messages, its latest message
// time, and how many messages from others are newer than since (all when nil).
func (uc *GetConversationSummaryUseCase) Execute(ctx context.Context, cabinetID, userID, rawKey string, since *time.Time) (*dto.SummaryResponse, error) {
	key, _, err := uc.access.resolve(ctx, cabinetID, userID, rawKey, false)
	if err != nil {
		return nil, err
	}

	summary, err := uc.messageRepo.Summarize(ctx, cabinetID, key, userID, since)
	if err != nil {
		uc.logger.Errorw("failed to summarize conversation", "cabinet_id", cabinetID, "conversation", key.String(), "error", err)
		return nil, fmt.Errorf("failed to summarize conversation: %w", err)
	}
	return dto.ToSummaryResponse(key, summary), nil
}
