package dto

import "time"

type ListNotificationsRequest struct {
	UnreadOnly bool `form:"unread"`
}

type NotificationResponse struct {
	ID          string         `json:"id"`
	RecipientID string         `json:"recipient_id"`
	ActorID     string         `json:"actor_id,omitempty"`
	Type        string         `json:"type"`
	Tab         string         `json:"tab,omitempty"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	ReferenceID string         `json:"reference_id,omitempty"`
	IsRead      bool           `json:"is_read"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BadgesResponse holds the unread count of every tab, keyed by tab name.
type BadgesResponse struct {
	Tabs  map[string]int64 `json:"tabs"`
	Total int64            `json:"total"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type DeleteReadResponse struct {
	Deleted int64 `json:"deleted"`
}

// ShareResourceRequest announces a shared document, dossier, contract or client
// to the rest of the cabinet.
type ShareResourceRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=document dossier contrat client"`
	ReferenceID string `json:"reference_id" validate:"required,max=100"`
	Name        string `json:"name" validate:"required,max=200"`
	Title       string `json:"title" validate:"omitempty,max=200"`
}

type ShareResourceResponse struct {
	Recipients int `json:"recipients"`
}
