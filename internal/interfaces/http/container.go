package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cabinet/internal/application/chat"
	"cabinet/internal/application/notification"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/infrastructure/auth"
	"cabinet/internal/infrastructure/config"
	"cabinet/internal/infrastructure/pubsub"
	"cabinet/internal/infrastructure/services"
	"cabinet/internal/interfaces/http/middleware"
	"cabinet/internal/shared/logger"
)

// Container holds infrastructure components, application services, handlers
// and the realtime relay, and provides Shutdown for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos  *repositories
	policy cabinet.PolicyEnforcer
	jwtSvc *auth.JWTService

	// Realtime
	hub         *services.RealtimeHub
	eventBus    *pubsub.RedisRealtimeEventBus
	broadcaster *services.RealtimeBroadcaster

	relayCancel   context.CancelFunc
	relayCancelMu sync.Mutex
	relayDone     chan struct{}

	// Application services
	chatService         *chat.ServiceDDD
	notificationService *notification.ServiceDDD

	// Handlers and middlewares
	hdlrs                   *allHandlers
	authMiddleware          *middleware.AuthMiddleware
	cabinetMemberMiddleware *middleware.CabinetMemberMiddleware
	sendRateLimiter         *middleware.RateLimiter
}

// NewContainer wires every dependency. redisClient may be nil, in which case
// realtime events stay on this instance and sends are not rate limited.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initServices()
	if err := c.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return c, nil
}

// Shutdown stops the relay and closes every open realtime stream so the
// HTTP server can drain quickly.
func (c *Container) Shutdown() {
	c.relayCancelMu.Lock()
	cancel := c.relayCancel
	c.relayCancel = nil
	c.relayCancelMu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-c.relayDone:
		case <-time.After(5 * time.Second):
			c.log.Warnw("realtime relay did not stop in time")
		}
	}

	c.hub.Close()
}
