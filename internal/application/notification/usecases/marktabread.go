package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/shared/errors"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

type MarkTabReadUseCase struct {
	repo      notification.Repository
	publisher ChangePublisher
	logger    logger.Interface
}

func NewMarkTabReadUseCase(repo notification.Repository, publisher ChangePublisher, logger logger.Interface) *MarkTabReadUseCase {
	return &MarkTabReadUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute marks every unread notification of the tab's types read in one batch.
func (uc *MarkTabReadUseCase) Execute(ctx context.Context, cabinetID, recipientID, rawTab string) (*dto.MarkReadResponse, error) {
	tab, err := vo.NewTab(rawTab)
	if err != nil {
		return nil, errors.NewValidationError("invalid notification tab", rawTab)
	}

	updated, err := uc.repo.MarkReadByTypes(ctx, cabinetID, recipientID, tab.Types())
	if err != nil {
		uc.logger.Errorw("failed to mark tab read", "cabinet_id", cabinetID, "tab", tab, "error", err)
		return nil, fmt.Errorf("failed to mark tab read: %w", err)
	}

	if updated > 0 {
		uc.publisher.NotificationChanged(ctx, cabinetID, proto.NotificationData{
			Event:       proto.NotificationUpdate,
			RecipientID: recipientID,
			Count:       updated,
		})
	}

	uc.logger.Infow("notification tab marked read", "cabinet_id", cabinetID, "tab", tab, "updated", updated)
	return &dto.MarkReadResponse{Updated: updated}, nil
}
