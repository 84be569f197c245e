package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
)

type DeleteConversationUseCase struct {
	conversationRepo conversation.Repository
	messageRepo      message.Repository
	policy           cabinet.PolicyEnforcer
	tx               TransactionRunner
	logger           logger.Interface
}

func NewDeleteConversationUseCase(
	conversationRepo conversation.Repository,
	messageRepo message.Repository,
	policy cabinet.PolicyEnforcer,
	tx TransactionRunner,
	logger logger.Interface,
) *DeleteConversationUseCase {
	return &DeleteConversationUseCase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		policy:           policy,
		tx:               tx,
		logger:           logger,
	}
}

// Execute removes a group conversation with its members and messages. The
// creator may always delete; other members need a policy grant for their role.
func (uc *DeleteConversationUseCase) Execute(ctx context.Context, actor *cabinet.Member, conversationID string) error {
	cabinetID := actor.CabinetID()
	conv, err := uc.conversationRepo.GetByID(ctx, cabinetID, conversationID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv == nil {
		return errors.NewNotFoundError("conversation not found")
	}

	if !conv.IsCreator(actor.UserID()) {
		allowed, err := uc.policy.Enforce(actor.Role(), cabinet.ResourceConversation, cabinet.ActionDelete)
		if err != nil {
			return fmt.Errorf("failed to check permission: %w", err)
		}
		if !allowed {
			uc.logger.Warnw("conversation deletion denied",
				"cabinet_id", cabinetID,
				"conversation_id", conversationID,
				"user_id", actor.UserID(),
				"role", actor.Role(),
			)
			return errors.NewForbiddenError("only the creator can delete this conversation")
		}
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.messageRepo.DeleteByConversation(txCtx, cabinetID, conversationID); err != nil {
			return err
		}
		return uc.conversationRepo.Delete(txCtx, cabinetID, conversationID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete conversation", "conversation_id", conversationID, "error", err)
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	uc.logger.Infow("conversation deleted", "cabinet_id", cabinetID, "conversation_id", conversationID, "user_id", actor.UserID())
	return nil
}
