package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cabinet/internal/application/chat"
	"cabinet/internal/application/notification"
	"cabinet/internal/infrastructure/auth"
	"cabinet/internal/infrastructure/permission"
	"cabinet/internal/infrastructure/pubsub"
	"cabinet/internal/infrastructure/ratelimit"
	"cabinet/internal/infrastructure/services"
	"cabinet/internal/interfaces/http/handlers"
	"cabinet/internal/interfaces/http/middleware"
	"cabinet/internal/shared/db"
	"cabinet/internal/shared/goroutine"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/services/mention"
)

// ============================================================
// Section 1: Infrastructure - repositories, policy, realtime
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.repos = newRepositories(c.db, log)

	enforcer, err := permission.NewEnforcer(cfg.Permission.Policies, log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.policy = enforcer

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer)

	c.hub = services.NewRealtimeHub(cfg.Realtime.SubscriberBuffer, log.Named("realtime-hub"))

	var bus pubsub.RealtimeEventBus
	if c.redis != nil {
		c.eventBus = pubsub.NewRedisRealtimeEventBus(c.redis, cfg.Realtime.ChannelPrefix, log.Named("realtime-bus"))
		bus = c.eventBus
	}
	c.broadcaster = services.NewRealtimeBroadcaster(c.hub, bus, log.Named("realtime"))

	return nil
}

// ============================================================
// Section 2: Application services
// ============================================================

func (c *Container) initServices() {
	repos := c.repos
	log := c.log

	c.chatService = chat.NewServiceDDD(
		repos.memberRepo,
		repos.conversationRepo,
		repos.messageRepo,
		repos.notificationRepo,
		c.policy,
		c.broadcaster,
		db.NewTransactionManager(c.db),
		mention.NewService(),
		chat.Options{NotifyOnMessage: c.cfg.Notifications.OnMessage},
		log.Named("chat"),
	)

	c.notificationService = notification.NewServiceDDD(
		repos.notificationRepo,
		repos.memberRepo,
		c.policy,
		c.broadcaster,
		log.Named("notification"),
	)
}

// ============================================================
// Section 3: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() error {
	cfg := c.cfg
	log := c.log

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for health checks: %w", err)
	}
	var redisCheck handlers.Pinger
	if c.redis != nil {
		redisCheck = redisPinger{client: c.redis}
	}

	c.hdlrs = &allHandlers{
		healthHandler:       handlers.NewHealthHandler(sqlDB, redisCheck, c.hub),
		chatHandler:         handlers.NewChatHandler(c.chatService, log),
		notificationHandler: handlers.NewNotificationHandler(c.notificationService, log),
		realtimeHandler: handlers.NewRealtimeHandler(
			c.hub,
			cfg.Server.AllowedOrigins,
			time.Duration(cfg.Realtime.PingSeconds)*time.Second,
			log.Named("realtime-ws"),
		),
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.cabinetMemberMiddleware = middleware.NewCabinetMemberMiddleware(c.repos.memberRepo, log)
	if c.redis != nil && cfg.Server.MessagesPerMinute > 0 {
		c.sendRateLimiter = middleware.NewRateLimiter(
			ratelimit.NewRedisLimiter(c.redis),
			"send",
			ratelimit.Config{PerMinute: cfg.Server.MessagesPerMinute},
			log.Named("ratelimit"),
		)
	}

	return nil
}

// StartRealtimeRelay forwards events published by other instances to local
// streams until ctx is done or Shutdown is called.
func (c *Container) StartRealtimeRelay(ctx context.Context) {
	relayCtx, cancel := context.WithCancel(ctx)
	c.relayCancelMu.Lock()
	c.relayCancel = cancel
	c.relayCancelMu.Unlock()

	done := make(chan struct{})
	c.relayDone = done
	goroutine.SafeGo(c.log, "realtime-relay", func() {
		defer close(done)
		if err := c.broadcaster.Run(relayCtx); err != nil {
			logSubscriberExit(c.log, "realtime relay", err)
		}
	})
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func logSubscriberExit(log logger.Interface, name string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Infow(name+" stopped", "reason", "context canceled")
		return
	}
	log.Errorw(name+" failed", "error", err)
}
