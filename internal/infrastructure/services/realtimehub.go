// Package services provides infrastructure services.
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"cabinet/internal/domain/message"
	"cabinet/internal/infrastructure/metrics"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

// Topic is the kind of change feed a stream subscribes to.
type Topic string

const (
	TopicMessages      Topic = "messages"
	TopicNotifications Topic = "notifications"
)

// RealtimeConn is one open realtime stream.
type RealtimeConn struct {
	ID        string
	CabinetID string
	UserID    string
	Topic     Topic
	// Conversation is the conversation the client had open when it subscribed.
	// Delivery is not restricted to it: unread counts of other conversations
	// are driven by the same stream.
	Conversation string
	Send         chan *proto.HubMessage
	ConnectedAt  time.Time
}

// RealtimeHub fans change events out to the open streams of an instance.
type RealtimeHub struct {
	conns   map[string]*RealtimeConn
	connsMu sync.RWMutex

	bufferSize int
	logger     logger.Interface
}

func NewRealtimeHub(bufferSize int, log logger.Interface) *RealtimeHub {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &RealtimeHub{
		conns:      make(map[string]*RealtimeConn),
		bufferSize: bufferSize,
		logger:     log,
	}
}

// Register opens a stream for userID in cabinetID.
func (h *RealtimeHub) Register(cabinetID, userID string, topic Topic, conversation string) *RealtimeConn {
	conn := &RealtimeConn{
		ID:           uuid.NewString(),
		CabinetID:    cabinetID,
		UserID:       userID,
		Topic:        topic,
		Conversation: conversation,
		Send:         make(chan *proto.HubMessage, h.bufferSize),
		ConnectedAt:  time.Now(),
	}

	h.connsMu.Lock()
	h.conns[conn.ID] = conn
	h.connsMu.Unlock()

	metrics.RecordConnectionOpened(string(topic))
	h.logger.Infow("realtime stream opened",
		"conn_id", conn.ID,
		"cabinet_id", cabinetID,
		"user_id", userID,
		"topic", topic,
		"conversation", conversation,
	)
	return conn
}

// Unregister closes the stream's send channel. Safe to call more than once.
func (h *RealtimeHub) Unregister(connID string) {
	h.connsMu.Lock()
	defer h.connsMu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}
	close(conn.Send)
	delete(h.conns, connID)

	metrics.RecordConnectionClosed(string(conn.Topic))
	h.logger.Infow("realtime stream closed",
		"conn_id", connID,
		"cabinet_id", conn.CabinetID,
		"user_id", conn.UserID,
		"topic", conn.Topic,
	)
}

// Deliver routes an event to every stream allowed to see it and returns the
// number of streams it was queued to.
func (h *RealtimeHub) Deliver(event *proto.Event) int {
	switch event.Type {
	case proto.MsgTypeMessageInserted:
		return h.deliverMessage(event)
	case proto.MsgTypeNotificationChanged:
		return h.deliverNotification(event)
	default:
		h.logger.Warnw("unknown realtime event type", "type", event.Type)
		return 0
	}
}

func (h *RealtimeHub) deliverMessage(event *proto.Event) int {
	if event.Message == nil {
		return 0
	}
	target, err := message.TargetFromColumns(event.Message.RecipientID, event.Message.ConversationID)
	if err != nil {
		h.logger.Warnw("dropping realtime message with invalid target",
			"message_id", event.Message.ID,
			"error", err,
		)
		return 0
	}
	m, err := message.ReconstructMessage(event.Message.ID, event.CabinetID, event.Message.SenderID,
		target, event.Message.Message, event.Message.CreatedAt)
	if err != nil {
		h.logger.Warnw("dropping invalid realtime message", "error", err)
		return 0
	}

	audience := make(map[string]struct{}, len(event.Audience))
	for _, id := range event.Audience {
		audience[id] = struct{}{}
	}

	return h.fanOut(event, TopicMessages, func(conn *RealtimeConn) bool {
		_, member := audience[conn.UserID]
		return m.VisibleTo(conn.UserID, member)
	}, event.Message)
}

func (h *RealtimeHub) deliverNotification(event *proto.Event) int {
	if event.Notification == nil {
		return 0
	}
	recipientID := event.Notification.RecipientID
	return h.fanOut(event, TopicNotifications, func(conn *RealtimeConn) bool {
		return conn.UserID == recipientID
	}, event.Notification)
}

func (h *RealtimeHub) fanOut(event *proto.Event, topic Topic, allowed func(*RealtimeConn) bool, data any) int {
	msg := &proto.HubMessage{
		Type:      event.Type,
		CabinetID: event.CabinetID,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	delivered := 0
	for _, conn := range h.conns {
		if conn.Topic != topic || conn.CabinetID != event.CabinetID || !allowed(conn) {
			continue
		}
		select {
		case conn.Send <- msg:
			delivered++
		default:
			metrics.RealtimeEventsDropped.WithLabelValues(event.Type).Inc()
			h.logger.Warnw("realtime send buffer full, dropping frame",
				"conn_id", conn.ID,
				"user_id", conn.UserID,
				"type", event.Type,
			)
		}
	}
	metrics.RealtimeEventsDelivered.WithLabelValues(event.Type).Add(float64(delivered))
	return delivered
}

// ConnectionCount returns the number of open streams.
func (h *RealtimeHub) ConnectionCount() int {
	h.connsMu.RLock()
	defer h.connsMu.RUnlock()
	return len(h.conns)
}

// Close tears down every open stream.
func (h *RealtimeHub) Close() {
	h.connsMu.Lock()
	defer h.connsMu.Unlock()
	for id, conn := range h.conns {
		close(conn.Send)
		delete(h.conns, id)
		metrics.RecordConnectionClosed(string(conn.Topic))
	}
}
