// Package notification models the per-recipient cabinet notification log.
package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	vo "cabinet/internal/domain/notification/valueobjects"
)

// Notification is one recipient's entry in the notification log.
type Notification struct {
	id               string
	cabinetID        string
	recipientID      string
	actorID          string
	notificationType vo.NotificationType
	title            string
	message          string
	referenceID      string
	isRead           bool
	payload          map[string]any
	createdAt        time.Time
	mu               sync.RWMutex
}

func NewNotification(
	cabinetID string,
	recipientID string,
	actorID string,
	notificationType vo.NotificationType,
	title string,
	message string,
	referenceID string,
	payload map[string]any,
) (*Notification, error) {
	if cabinetID == "" {
		return nil, fmt.Errorf("cabinet ID is required")
	}
	if recipientID == "" {
		return nil, fmt.Errorf("recipient ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}

	return &Notification{
		id:               uuid.NewString(),
		cabinetID:        cabinetID,
		recipientID:      recipientID,
		actorID:          actorID,
		notificationType: notificationType,
		title:            title,
		message:          message,
		referenceID:      referenceID,
		payload:          payload,
		createdAt:        time.Now().UTC(),
	}, nil
}

func ReconstructNotification(
	id string,
	cabinetID string,
	recipientID string,
	actorID string,
	notificationType vo.NotificationType,
	title string,
	message string,
	referenceID string,
	isRead bool,
	payload map[string]any,
	createdAt time.Time,
) (*Notification, error) {
	if id == "" {
		return nil, fmt.Errorf("notification ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type %q", notificationType)
	}

	return &Notification{
		id:               id,
		cabinetID:        cabinetID,
		recipientID:      recipientID,
		actorID:          actorID,
		notificationType: notificationType,
		title:            title,
		message:          message,
		referenceID:      referenceID,
		isRead:           isRead,
		payload:          payload,
		createdAt:        createdAt,
	}, nil
}

func (n *Notification) ID() string                            { return n.id }
func (n *Notification) CabinetID() string                     { return n.cabinetID }
func (n *Notification) RecipientID() string                   { return n.recipientID }
func (n *Notification) ActorID() string                       { return n.actorID }
func (n *Notification) NotificationType() vo.NotificationType { return n.notificationType }
func (n *Notification) Title() string                         { return n.title }
func (n *Notification) Message() string                       { return n.message }
func (n *Notification) ReferenceID() string                   { return n.referenceID }
func (n *Notification) Payload() map[string]any               { return n.payload }
func (n *Notification) CreatedAt() time.Time                  { return n.createdAt }

func (n *Notification) IsRead() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.isRead
}

// Tab returns the badge bucket this notification counts toward.
func (n *Notification) Tab() (vo.Tab, bool) {
	return vo.TabOf(n.notificationType)
}

func (n *Notification) MarkAsRead() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.isRead = true
}
