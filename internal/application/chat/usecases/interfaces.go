package usecases

import (
	"context"

	"cabinet/internal/domain/message"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
)

// RealtimePublisher announces committed changes on the realtime feed.
type RealtimePublisher interface {
	MessageInserted(ctx context.Context, m *message.Message, audience []string)
	NotificationChanged(ctx context.Context, cabinetID string, change proto.NotificationData)
}

// TransactionRunner runs fn in one database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
