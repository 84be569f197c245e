package http

import (
	"cabinet/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler       *handlers.HealthHandler
	chatHandler         *handlers.ChatHandler
	notificationHandler *handlers.NotificationHandler
	realtimeHandler     *handlers.RealtimeHandler
}
