package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/domain/notification"
	"cabinet/internal/shared/errors"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

type MarkReadUseCase struct {
	repo      notification.Repository
	publisher ChangePublisher
	logger    logger.Interface
}

func NewMarkReadUseCase(repo notification.Repository, publisher ChangePublisher, logger logger.Interface) *MarkReadUseCase {
	return &MarkReadUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, cabinetID, recipientID, id string) error {
	n, err := uc.repo.GetByID(ctx, cabinetID, recipientID, id)
	if err != nil {
		uc.logger.Errorw("failed to find notification", "id", id, "error", err)
		return fmt.Errorf("failed to find notification: %w", err)
	}
	if n == nil {
		return errors.NewNotFoundError("notification not found")
	}
	if n.IsRead() {
		return nil
	}

	if err := uc.repo.MarkRead(ctx, cabinetID, recipientID, id); err != nil {
		uc.logger.Errorw("failed to mark notification read", "id", id, "error", err)
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	uc.publisher.NotificationChanged(ctx, cabinetID, proto.NotificationData{
		Event:       proto.NotificationUpdate,
		RecipientID: recipientID,
		ID:          id,
		Type:        n.NotificationType().String(),
		Count:       1,
	})
	return nil
}
