package handlers

import (
	"context"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/cabinet"
)

// notificationService is the subset of notification.ServiceDDD used by NotificationHandler.
type notificationService interface {
	ListNotifications(ctx context.Context, cabinetID, recipientID string, req dto.ListNotificationsRequest) ([]*dto.NotificationResponse, error)
	GetBadges(ctx context.Context, cabinetID, recipientID string) (*dto.BadgesResponse, error)
	MarkTabRead(ctx context.Context, cabinetID, recipientID, tab string) (*dto.MarkReadResponse, error)
	MarkRead(ctx context.Context, cabinetID, recipientID, id string) error
	MarkAllRead(ctx context.Context, cabinetID, recipientID string) (*dto.MarkReadResponse, error)
	DeleteRead(ctx context.Context, actor *cabinet.Member) (*dto.DeleteReadResponse, error)
	ShareResource(ctx context.Context, actor *cabinet.Member, req dto.ShareResourceRequest) (*dto.ShareResourceResponse, error)
}
