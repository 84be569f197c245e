package notification

import (
	"context"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/application/notification/usecases"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/notification"
	"cabinet/internal/shared/logger"
)

type ServiceDDD struct {
	logger logger.Interface

	listNotifications *usecases.ListNotificationsUseCase
	getBadges         *usecases.GetBadgesUseCase
	markTabRead       *usecases.MarkTabReadUseCase
	markRead          *usecases.MarkReadUseCase
	markAllRead       *usecases.MarkAllReadUseCase
	deleteRead        *usecases.DeleteReadUseCase
	shareResource     *usecases.ShareResourceUseCase
}

func NewServiceDDD(
	notificationRepo notification.Repository,
	memberRepo cabinet.MemberRepository,
	policy cabinet.PolicyEnforcer,
	publisher usecases.ChangePublisher,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		logger: logger,

		listNotifications: usecases.NewListNotificationsUseCase(notificationRepo, logger),
		getBadges:         usecases.NewGetBadgesUseCase(notificationRepo, logger),
		markTabRead:       usecases.NewMarkTabReadUseCase(notificationRepo, publisher, logger),
		markRead:          usecases.NewMarkReadUseCase(notificationRepo, publisher, logger),
		markAllRead:       usecases.NewMarkAllReadUseCase(notificationRepo, publisher, logger),
		deleteRead:        usecases.NewDeleteReadUseCase(notificationRepo, policy, publisher, logger),
		shareResource:     usecases.NewShareResourceUseCase(notificationRepo, memberRepo, publisher, logger),
	}
}

func (s *ServiceDDD) ListNotifications(ctx context.Context, cabinetID, recipientID string, req dto.ListNotificationsRequest) ([]*dto.NotificationResponse, error) {
	return s.listNotifications.Execute(ctx, cabinetID, recipientID, req)
}

func (s *ServiceDDD) GetBadges(ctx context.Context, cabinetID, recipientID string) (*dto.BadgesResponse, error) {
	return s.getBadges.Execute(ctx, cabinetID, recipientID)
}

func (s *ServiceDDD) MarkTabRead(ctx context.Context, cabinetID, recipientID, tab string) (*dto.MarkReadResponse, error) {
	return s.markTabRead.Execute(ctx, cabinetID, recipientID, tab)
}

func (s *ServiceDDD) MarkRead(ctx context.Context, cabinetID, recipientID, id string) error {
	return s.markRead.Execute(ctx, cabinetID, recipientID, id)
}

func (s *ServiceDDD) MarkAllRead(ctx context.Context, cabinetID, recipientID string) (*dto.MarkReadResponse, error) {
	return s.markAllRead.Execute(ctx, cabinetID, recipientID)
}

func (s *ServiceDDD) DeleteRead(ctx context.Context, actor *cabinet.Member) (*dto.DeleteReadResponse, error) {
	return s.deleteRead.Execute(ctx, actor)
}

func (s *ServiceDDD) ShareResource(ctx context.Context, actor *cabinet.Member, req dto.ShareResourceRequest) (*dto.ShareResourceResponse, error) {
	return s.shareResource.Execute(ctx, actor, req)
}
