package usecases

import (
	"context"

	proto "cabinet/internal/shared/hubprotocol/cabinet"
)

// ChangePublisher announces notification-log changes on the realtime feed.
type ChangePublisher interface {
	NotificationChanged(ctx context.Context, cabinetID string, change proto.NotificationData)
}
