package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/notification"
	"cabinet/internal/shared/logger"
)

type ListNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute lists the recipient's notifications, newest first.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, cabinetID, recipientID string, req dto.ListNotificationsRequest) ([]*dto.NotificationResponse, error) {
	notifications, err := uc.repo.ListByRecipient(ctx, cabinetID, recipientID, req.UnreadOnly)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "cabinet_id", cabinetID, "recipient_id", recipientID, "error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return dto.ToNotificationResponses(notifications), nil
}
