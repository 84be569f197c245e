package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils/setutil"
)

type CreateConversationUseCase struct {
	conversationRepo conversation.Repository
	memberRepo       cabinet.MemberRepository
	logger           logger.Interface
}

func NewCreateConversationUseCase(
	conversationRepo conversation.Repository,
	memberRepo cabinet.MemberRepository,
	logger logger.Interface,
) *CreateConversationUseCase {
	return &CreateConversationUseCase{
		conversationRepo: conversationRepo,
		memberRepo:       memberRepo,
		logger:           logger,
	}
}

// Execute creates a group conversation. The creator is always a member and
// every other member must be active in the cabinet.
func (uc *CreateConversationUseCase) Execute(ctx context.Context, cabinetID, creatorID string, req dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	uc.logger.Infow("executing create conversation use case", "cabinet_id", cabinetID, "creator_id", creatorID)

	active, err := uc.memberRepo.ListActive(ctx, cabinetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	activeIDs := setutil.NewStringSet()
	for _, m := range active {
		activeIDs.Add(m.UserID())
	}
	for _, id := range req.MemberIDs {
		if !activeIDs.Contains(id) {
			return nil, errors.NewValidationError("unknown member", id)
		}
	}

	conv, err := conversation.NewConversation(cabinetID, req.Name, creatorID, req.MemberIDs)
	if err != nil {
		uc.logger.Warnw("invalid create conversation request", "cabinet_id", cabinetID, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.conversationRepo.Create(ctx, conv); err != nil {
		uc.logger.Errorw("failed to create conversation", "cabinet_id", cabinetID, "error", err)
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	uc.logger.Infow("conversation created",
		"cabinet_id", cabinetID,
		"conversation_id", conv.ID(),
		"members", len(conv.MemberIDs()),
	)
	return dto.ToConversationResponse(conv), nil
}
