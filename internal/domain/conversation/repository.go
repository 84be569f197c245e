package conversation

import "context"

type Repository interface {
	// Create stores the conversation and its member rows.
	Create(ctx context.Context, c *Conversation) error
	// GetByID returns nil when the conversation does not exist in the cabinet.
	GetByID(ctx context.Context, cabinetID, id string) (*Conversation, error)
	ListByMember(ctx context.Context, cabinetID, userID string) ([]*Conversation, error)
	// Delete removes the conversation and its member rows.
	Delete(ctx context.Context, cabinetID, id string) error
}
