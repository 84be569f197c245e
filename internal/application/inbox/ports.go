package inbox

import (
	"context"
	"time"

	chatdto "cabinet/internal/application/chat/dto"
	notificationdto "cabinet/internal/application/notification/dto"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
)

// Backend is the server API the inbox reads from and writes to.
type Backend interface {
	ListMembers(ctx context.Context, cabinetID string) ([]*chatdto.MemberResponse, error)
	ListConversations(ctx context.Context, cabinetID string) ([]*chatdto.ConversationResponse, error)
	ListMessages(ctx context.Context, cabinetID, key string) ([]*chatdto.MessageResponse, error)
	// ConversationSummary counts every message from others when since is nil.
	ConversationSummary(ctx context.Context, cabinetID, key string, since *time.Time) (*chatdto.SummaryResponse, error)
	SendMessage(ctx context.Context, cabinetID, key, text string) (*chatdto.MessageResponse, error)
	NotificationBadges(ctx context.Context, cabinetID string) (*notificationdto.BadgesResponse, error)
	MarkTabRead(ctx context.Context, cabinetID, tab string) (*notificationdto.MarkReadResponse, error)
}

// MarkerStore persists read markers and the last opened conversation on this device.
type MarkerStore interface {
	LastViewed(ctx context.Context, cabinetID, conversationKey string) (time.Time, bool)
	SetLastViewed(ctx context.Context, cabinetID, conversationKey string, at time.Time) error
	SelectedConversation(ctx context.Context, cabinetID string) (string, bool)
	SetSelectedConversation(ctx context.Context, cabinetID, conversationKey string) error
}

// Subscription is an open realtime stream. Close must not wait for handlers
// still running.
type Subscription interface {
	Close() error
}

// Subscriber opens realtime streams. Handlers run on the stream's own goroutine.
type Subscriber interface {
	SubscribeMessages(ctx context.Context, cabinetID, conversationKey string, handler func(proto.MessageData)) (Subscription, error)
	SubscribeNotifications(ctx context.Context, cabinetID string, handler func(proto.NotificationData)) (Subscription, error)
}
