package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/notification"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

type MarkAllReadUseCase struct {
	repo      notification.Repository
	publisher ChangePublisher
	logger    logger.Interface
}

func NewMarkAllReadUseCase(repo notification.Repository, publisher ChangePublisher, logger logger.Interface) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, cabinetID, recipientID string) (*dto.MarkReadResponse, error) {
	updated, err := uc.repo.MarkAllRead(ctx, cabinetID, recipientID)
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications read", "cabinet_id", cabinetID, "recipient_id", recipientID, "error", err)
		return nil, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	if updated > 0 {
		uc.publisher.NotificationChanged(ctx, cabinetID, proto.NotificationData{
			Event:       proto.NotificationUpdate,
			RecipientID: recipientID,
			Count:       updated,
		})
	}
	return &dto.MarkReadResponse{Updated: updated}, nil
}
