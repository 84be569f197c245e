package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/shared/errors"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

type ShareResourceUseCase struct {
	repo       notification.Repository
	memberRepo cabinet.MemberRepository
	publisher  ChangePublisher
	logger     logger.Interface
}

func NewShareResourceUseCase(
	repo notification.Repository,
	memberRepo cabinet.MemberRepository,
	publisher ChangePublisher,
	logger logger.Interface,
) *ShareResourceUseCase {
	return &ShareResourceUseCase{
		repo:       repo,
		memberRepo: memberRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute notifies every other active member that the actor shared a resource.
func (uc *ShareResourceUseCase) Execute(ctx context.Context, actor *cabinet.Member, req dto.ShareResourceRequest) (*dto.ShareResourceResponse, error) {
	kind, err := vo.NewResourceKind(req.Kind)
	if err != nil {
		return nil, errors.NewValidationError("invalid resource kind", req.Kind)
	}

	members, err := uc.memberRepo.ListActive(ctx, actor.CabinetID())
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	title := req.Title
	if title == "" {
		title = kind.DefaultTitle()
	}
	body := actor.DisplayName() + " a partagé « " + req.Name + " »"

	notifications := make([]*notification.Notification, 0, len(members))
	for _, m := range members {
		if m.UserID() == actor.UserID() {
			continue
		}
		n, err := notification.NewNotification(
			actor.CabinetID(),
			m.UserID(),
			actor.UserID(),
			kind.NotificationType(),
			title,
			body,
			req.ReferenceID,
			map[string]any{"kind": string(kind), "reference_id": req.ReferenceID},
		)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		notifications = append(notifications, n)
	}

	if err := uc.repo.BulkCreate(ctx, notifications); err != nil {
		uc.logger.Errorw("failed to create share notifications", "cabinet_id", actor.CabinetID(), "error", err)
		return nil, fmt.Errorf("failed to create notifications: %w", err)
	}

	for _, n := range notifications {
		uc.publisher.NotificationChanged(ctx, actor.CabinetID(), proto.NotificationData{
			Event:       proto.NotificationInsert,
			RecipientID: n.RecipientID(),
			ID:          n.ID(),
			Type:        n.NotificationType().String(),
		})
	}

	uc.logger.Infow("resource shared",
		"cabinet_id", actor.CabinetID(),
		"kind", kind,
		"reference_id", req.ReferenceID,
		"recipients", len(notifications),
	)
	return &dto.ShareResourceResponse{Recipients: len(notifications)}, nil
}
