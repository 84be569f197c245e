package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cabinet/internal/shared/goroutine"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

// RealtimeEventHandler receives events published by other instances.
type RealtimeEventHandler func(event *proto.Event)

// RealtimeEventBus relays realtime events between server instances.
type RealtimeEventBus interface {
	Publish(ctx context.Context, event *proto.Event) error
	Subscribe(ctx context.Context, handler RealtimeEventHandler) error
}

// RedisRealtimeEventBus implements RealtimeEventBus using Redis Pub/Sub.
type RedisRealtimeEventBus struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string // set on published events so an instance skips its own
}

// NewRedisRealtimeEventBus publishes on "<prefix>:events".
func NewRedisRealtimeEventBus(client *redis.Client, channelPrefix string, log logger.Interface) *RedisRealtimeEventBus {
	return &RedisRealtimeEventBus{
		client:     client,
		channel:    channelPrefix + ":events",
		logger:     log,
		instanceID: uuid.NewString(),
	}
}

// InstanceID identifies this process on the bus.
func (b *RedisRealtimeEventBus) InstanceID() string {
	return b.instanceID
}

func (b *RedisRealtimeEventBus) Publish(ctx context.Context, event *proto.Event) error {
	relayed := *event
	relayed.InstanceID = b.instanceID

	data, err := json.Marshal(&relayed)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish realtime event",
			"type", event.Type,
			"cabinet_id", event.CabinetID,
			"error", err,
		)
		return fmt.Errorf("failed to publish realtime event: %w", err)
	}

	b.logger.Debugw("realtime event published to Redis",
		"type", event.Type,
		"cabinet_id", event.CabinetID,
	)
	return nil
}

// Subscribe blocks until ctx is done. Events published by this instance are skipped.
func (b *RedisRealtimeEventBus) Subscribe(ctx context.Context, handler RealtimeEventHandler) error {
	return b.subscribeWithReconnect(ctx, func(payload string) {
		var event proto.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			b.logger.Warnw("failed to unmarshal realtime event",
				"payload", payload,
				"error", err,
			)
			return
		}
		if event.InstanceID == b.instanceID {
			return
		}
		handler(&event)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (b *RedisRealtimeEventBus) subscribeWithReconnect(ctx context.Context, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("realtime subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisRealtimeEventBus) subscribe(ctx context.Context, handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to realtime event channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("realtime event subscriber stopped",
				"channel", b.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("realtime event channel closed", "channel", b.channel)
				return nil
			}
			// Sequential handling keeps per-cabinet ordering across instances.
			goroutine.SafeCall(b.logger, "realtime-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
