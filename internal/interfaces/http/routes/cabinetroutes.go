package routes

import (
	"github.com/gin-gonic/gin"

	"cabinet/internal/interfaces/http/handlers"
	"cabinet/internal/interfaces/http/middleware"
)

type CabinetRouteConfig struct {
	ChatHandler             *handlers.ChatHandler
	NotificationHandler     *handlers.NotificationHandler
	RealtimeHandler         *handlers.RealtimeHandler
	AuthMiddleware          *middleware.AuthMiddleware
	CabinetMemberMiddleware *middleware.CabinetMemberMiddleware
	// SendRateLimiter is optional; nil disables send throttling.
	SendRateLimiter *middleware.RateLimiter
}

func SetupCabinetRoutes(engine *gin.Engine, config *CabinetRouteConfig) {
	api := engine.Group("/api")
	api.Use(config.AuthMiddleware.RequireAuth())

	api.GET("/me", config.ChatHandler.Me)

	cabinets := api.Group("/cabinets/:cabinet_id")
	cabinets.Use(config.CabinetMemberMiddleware.RequireActiveMember())
	{
		cabinets.GET("/members", config.ChatHandler.ListMembers)

		conversations := cabinets.Group("/conversations")
		{
			conversations.GET("", config.ChatHandler.ListConversations)
			conversations.POST("", config.ChatHandler.CreateConversation)
			// :key is a conversation key (general, direct-<peer>, group id); delete only accepts group ids.
			conversations.DELETE("/:key", config.ChatHandler.DeleteConversation)
			conversations.GET("/:key/messages", config.ChatHandler.ListMessages)
			conversations.POST("/:key/messages", sendHandlers(config)...)
			conversations.GET("/:key/summary", config.ChatHandler.GetConversationSummary)
		}

		notifications := cabinets.Group("/notifications")
		{
			notifications.GET("", config.NotificationHandler.ListNotifications)
			notifications.GET("/badges", config.NotificationHandler.GetBadges)
			notifications.PATCH("/read", config.NotificationHandler.MarkAllRead)
			notifications.DELETE("/read", config.NotificationHandler.DeleteRead)
			notifications.PATCH("/tabs/:tab/read", config.NotificationHandler.MarkTabRead)
			notifications.PATCH("/:id/read", config.NotificationHandler.MarkRead)
		}

		cabinets.POST("/shares", config.NotificationHandler.ShareResource)

		realtime := cabinets.Group("/realtime")
		{
			realtime.GET("/messages", config.RealtimeHandler.MessagesWS)
			realtime.GET("/notifications", config.RealtimeHandler.NotificationsWS)
		}
	}
}

func sendHandlers(config *CabinetRouteConfig) []gin.HandlerFunc {
	if config.SendRateLimiter == nil {
		return []gin.HandlerFunc{config.ChatHandler.SendMessage}
	}
	return []gin.HandlerFunc{config.SendRateLimiter.Limit(), config.ChatHandler.SendMessage}
}
