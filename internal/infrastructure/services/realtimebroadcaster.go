package services

import (
	"context"

	"cabinet/internal/domain/message"
	"cabinet/internal/infrastructure/metrics"
	"cabinet/internal/infrastructure/pubsub"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

// RealtimeBroadcaster delivers change events to local streams and, when a
// bus is configured, relays them to the other server instances.
type RealtimeBroadcaster struct {
	hub    *RealtimeHub
	bus    pubsub.RealtimeEventBus
	logger logger.Interface
}

// NewRealtimeBroadcaster accepts a nil bus for single-instance deployments.
func NewRealtimeBroadcaster(hub *RealtimeHub, bus pubsub.RealtimeEventBus, log logger.Interface) *RealtimeBroadcaster {
	return &RealtimeBroadcaster{hub: hub, bus: bus, logger: log}
}

// MessageInserted announces a persisted message. audience lists the members
// of the target group and is ignored for broadcast and direct messages.
func (b *RealtimeBroadcaster) MessageInserted(ctx context.Context, m *message.Message, audience []string) {
	recipientID, conversationID := m.Target().Columns()
	metrics.RecordMessageSent(m.Target().Kind().String())
	b.publish(ctx, &proto.Event{
		Type:      proto.MsgTypeMessageInserted,
		CabinetID: m.CabinetID(),
		Message: &proto.MessageData{
			ID:             m.ID(),
			CabinetID:      m.CabinetID(),
			SenderID:       m.SenderID(),
			RecipientID:    recipientID,
			ConversationID: conversationID,
			Message:        m.Body(),
			CreatedAt:      m.CreatedAt(),
		},
		Audience: audience,
	})
}

// NotificationChanged announces a change to recipientID's notification log.
func (b *RealtimeBroadcaster) NotificationChanged(ctx context.Context, cabinetID string, change proto.NotificationData) {
	if change.Event == proto.NotificationInsert {
		metrics.RecordNotificationsCreated(change.Type, 1)
	}
	b.publish(ctx, &proto.Event{
		Type:         proto.MsgTypeNotificationChanged,
		CabinetID:    cabinetID,
		Notification: &change,
	})
}

func (b *RealtimeBroadcaster) publish(ctx context.Context, event *proto.Event) {
	b.hub.Deliver(event)

	if b.bus == nil {
		return
	}
	// Relay failures are logged only; remote clients catch up on reconciliation.
	if err := b.bus.Publish(ctx, event); err != nil {
		b.logger.Warnw("failed to relay realtime event",
			"type", event.Type,
			"cabinet_id", event.CabinetID,
			"error", err,
		)
	}
}

// Run relays events from other instances into the local hub until ctx is done.
func (b *RealtimeBroadcaster) Run(ctx context.Context) error {
	if b.bus == nil {
		<-ctx.Done()
		return nil
	}
	return b.bus.Subscribe(ctx, func(event *proto.Event) {
		b.hub.Deliver(event)
	})
}
