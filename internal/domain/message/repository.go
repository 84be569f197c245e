package message

import (
	"context"
	"time"
)

// Summary is the per-conversation digest used to enumerate and count unread.
type Summary struct {
	HasMessages bool
	LatestAt    *time.Time
	// Unread counts messages strictly newer than the requested marker, not sent by the viewer.
	Unread int64
}

type Repository interface {
	Create(ctx context.Context, m *Message) error
	// ListByConversation returns the conversation transcript in ascending time order.
	ListByConversation(ctx context.Context, cabinetID string, key ConversationKey, viewerID string) ([]*Message, error)
	// Summarize counts every message when since is nil.
	Summarize(ctx context.Context, cabinetID string, key ConversationKey, viewerID string, since *time.Time) (*Summary, error)
	DeleteByConversation(ctx context.Context, cabinetID, conversationID string) error
}
