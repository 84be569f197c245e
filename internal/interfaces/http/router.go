package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cabinet/internal/interfaces/http/middleware"
	"cabinet/internal/interfaces/http/routes"
)

// Router exposes the HTTP surface of a Container.
type Router struct {
	*Container
}

func NewRouter(c *Container) *Router {
	return &Router{Container: c}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Metrics())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupCabinetRoutes(r.engine, &routes.CabinetRouteConfig{
		ChatHandler:             r.hdlrs.chatHandler,
		NotificationHandler:     r.hdlrs.notificationHandler,
		RealtimeHandler:         r.hdlrs.realtimeHandler,
		AuthMiddleware:          r.authMiddleware,
		CabinetMemberMiddleware: r.cabinetMemberMiddleware,
		SendRateLimiter:         r.sendRateLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
