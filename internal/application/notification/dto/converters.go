package dto

import (
	"cabinet/internal/domain/notification"
	"cabinet/internal/shared/mapper"
)

func ToNotificationResponse(n *notification.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:          n.ID(),
		RecipientID: n.RecipientID(),
		ActorID:     n.ActorID(),
		Type:        n.NotificationType().String(),
		Title:       n.Title(),
		Message:     n.Message(),
		ReferenceID: n.ReferenceID(),
		IsRead:      n.IsRead(),
		Payload:     n.Payload(),
		CreatedAt:   n.CreatedAt(),
	}
	if tab, ok := n.Tab(); ok {
		resp.Tab = tab.String()
	}
	return resp
}

func ToNotificationResponses(notifications []*notification.Notification) []*NotificationResponse {
	return mapper.MapSlice(notifications, ToNotificationResponse)
}
