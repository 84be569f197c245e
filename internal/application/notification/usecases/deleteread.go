package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/notification"
	"cabinet/internal/shared/errors"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

type DeleteReadUseCase struct {
	repo      notification.Repository
	policy    cabinet.PolicyEnforcer
	publisher ChangePublisher
	logger    logger.Interface
}

func NewDeleteReadUseCase(
	repo notification.Repository,
	policy cabinet.PolicyEnforcer,
	publisher ChangePublisher,
	logger logger.Interface,
) *DeleteReadUseCase {
	return &DeleteReadUseCase{
		repo:      repo,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute purges the actor's read notifications when their cabinet role allows it.
func (uc *DeleteReadUseCase) Execute(ctx context.Context, actor *cabinet.Member) (*dto.DeleteReadResponse, error) {
	allowed, err := uc.policy.Enforce(actor.Role(), cabinet.ResourceNotification, cabinet.ActionPurge)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("notification purge denied", "cabinet_id", actor.CabinetID(), "user_id", actor.UserID(), "role", actor.Role())
		return nil, errors.NewForbiddenError("your role cannot delete notifications")
	}

	deleted, err := uc.repo.DeleteRead(ctx, actor.CabinetID(), actor.UserID())
	if err != nil {
		uc.logger.Errorw("failed to delete read notifications", "cabinet_id", actor.CabinetID(), "error", err)
		return nil, fmt.Errorf("failed to delete read notifications: %w", err)
	}

	if deleted > 0 {
		uc.publisher.NotificationChanged(ctx, actor.CabinetID(), proto.NotificationData{
			Event:       proto.NotificationDelete,
			RecipientID: actor.UserID(),
			Count:       deleted,
		})
	}

	uc.logger.Infow("read notifications deleted", "cabinet_id", actor.CabinetID(), "user_id", actor.UserID(), "deleted", deleted)
	return &dto.DeleteReadResponse{Deleted: deleted}, nil
}
