package valueobjects

import "fmt"

type NotificationType string

const (
	NotificationTypeMessage  NotificationType = "cabinet_message"
	NotificationTypeDocument NotificationType = "cabinet_document"
	NotificationTypeDossier  NotificationType = "cabinet_dossier"
	NotificationTypeContrat  NotificationType = "cabinet_contrat"
	NotificationTypeClient   NotificationType = "cabinet_client"
)

var validNotificationTypes = map[NotificationType]bool{
	NotificationTypeMessage:  true,
	NotificationTypeDocument: true,
	NotificationTypeDossier:  true,
	NotificationTypeContrat:  true,
	NotificationTypeClient:   true,
}

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	return validNotificationTypes[t]
}

func (t NotificationType) IsMessage() bool {
	return t == NotificationTypeMessage
}

func NewNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}
