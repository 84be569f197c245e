package notification

import (
	"context"

	vo "cabinet/internal/domain/notification/valueobjects"
)

type Repository interface {
	BulkCreate(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, cabinetID, recipientID, id string) (*Notification, error)
	ListByRecipient(ctx context.Context, cabinetID, recipientID string, unreadOnly bool) ([]*Notification, error)
	CountUnreadByType(ctx context.Context, cabinetID, recipientID string) (map[vo.NotificationType]int64, error)
	// MarkReadByTypes flips every unread row of the given types for the recipient in one statement.
	MarkReadByTypes(ctx context.Context, cabinetID, recipientID string, types []vo.NotificationType) (int64, error)
	MarkRead(ctx context.Context, cabinetID, recipientID, id string) error
	MarkAllRead(ctx context.Context, cabinetID, recipientID string) (int64, error)
	DeleteRead(ctx context.Context, cabinetID, recipientID string) (int64, error)
}
