// Package cabinet defines the realtime protocol types for the cabinet change feed.
// These types are shared between the server hub, the Redis relay and the inbox client.
package cabinet

import (
	"encoding/json"
	"time"
)

// Hub message type constants (Server -> Client).
const (
	MsgTypeMessageInserted     = "message_inserted"
	MsgTypeNotificationChanged = "notification_changed"
)

// Notification change kinds.
const (
	NotificationInsert = "INSERT"
	NotificationUpdate = "UPDATE"
	NotificationDelete = "DELETE"
)

// HubMessage is the WebSocket message envelope.
type HubMessage struct {
	Type      string `json:"type"`
	CabinetID string `json:"cabinet_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// InboundMessage is HubMessage as decoded by a client; Data is decoded per Type.
type InboundMessage struct {
	Type      string          `json:"type"`
	CabinetID string          `json:"cabinet_id,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MessageData is an inserted message row.
type MessageData struct {
	ID             string    `json:"id"`
	CabinetID      string    `json:"cabinet_id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    *string   `json:"recipient_id,omitempty"`
	ConversationID *string   `json:"conversation_id,omitempty"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationData describes a change to the recipient's notification log.
// Batch updates leave ID empty and report the affected row count.
type NotificationData struct {
	Event       string `json:"event"`
	RecipientID string `json:"recipient_id"`
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Count       int64  `json:"count,omitempty"`
}

// Event is the server-side fan-out unit relayed between instances.
// Audience lists the group members for group messages; it never reaches clients.
type Event struct {
	Type         string            `json:"type"`
	CabinetID    string            `json:"cabinet_id"`
	Message      *MessageData      `json:"message,omitempty"`
	Audience     []string          `json:"audience,omitempty"`
	Notification *NotificationData `json:"notification,omitempty"`
	InstanceID   string            `json:"instance_id,omitempty"`
}
