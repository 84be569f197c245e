package handlers

import (
	"context"
	"time"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/cabinet"
)

// chatService is the subset of chat.ServiceDDD used by ChatHandler.
type chatService interface {
	ListMembers(ctx context.Context, cabinetID string) ([]*dto.MemberResponse, error)
	ListConversations(ctx context.Context, cabinetID, userID string) ([]*dto.ConversationResponse, error)
	CreateConversation(ctx context.Context, cabinetID, creatorID string, req dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	DeleteConversation(ctx context.Context, actor *cabinet.Member, conversationID string) error
	ListMessages(ctx context.Context, cabinetID, userID, key string) ([]*dto.MessageResponse, error)
	SendMessage(ctx context.Context, cabinetID, senderID, key string, req dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetConversationSummary(ctx context.Context, cabinetID, userID, key string, since *time.Time) (*dto.SummaryResponse, error)
}
