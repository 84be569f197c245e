package dto

import "time"

type MeResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

type MemberResponse struct {
	UserID       string `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Role         string `json:"role"`
	ContactLabel string `json:"contact_label"`
}

type ConversationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	MemberIDs []string  `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateConversationRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	MemberIDs []string `json:"member_ids" validate:"required,min=1,dive,uuid"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	CabinetID      string    `json:"cabinet_id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    *string   `json:"recipient_id,omitempty"`
	ConversationID *string   `json:"conversation_id,omitempty"`
	Conversation   string    `json:"conversation"`
	Message        string    `json:"message"`
	// RenderedHTML is the sanitized HTML rendering of Message with mentions highlighted.
	RenderedHTML   string    `json:"rendered_html,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

type SummaryResponse struct {
	Conversation string     `json:"conversation"`
	HasMessages  bool       `json:"has_messages"`
	LatestAt     *time.Time `json:"latest_at,omitempty"`
	Unread       int64      `json:"unread"`
}
