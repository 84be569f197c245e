package valueobjects

import "fmt"

// ResourceKind is something a member can share with the rest of the cabinet.
type ResourceKind string

const (
	ResourceKindDocument ResourceKind = "document"
	ResourceKindDossier  ResourceKind = "dossier"
	ResourceKindContrat  ResourceKind = "contrat"
	ResourceKindClient   ResourceKind = "client"
)

var resourceNotificationTypes = map[ResourceKind]NotificationType{
	ResourceKindDocument: NotificationTypeDocument,
	ResourceKindDossier:  NotificationTypeDossier,
	ResourceKindContrat:  NotificationTypeContrat,
	ResourceKindClient:   NotificationTypeClient,
}

var resourceTitles = map[ResourceKind]string{
	ResourceKindDocument: "Nouveau document partagé",
	ResourceKindDossier:  "Nouveau dossier partagé",
	ResourceKindContrat:  "Nouveau contrat partagé",
	ResourceKindClient:   "Nouveau client partagé",
}

func NewResourceKind(s string) (ResourceKind, error) {
	k := ResourceKind(s)
	if _, ok := resourceNotificationTypes[k]; !ok {
		return "", fmt.Errorf("invalid resource kind: %s", s)
	}
	return k, nil
}

// NotificationType is the type of notification emitted when this kind is shared.
func (k ResourceKind) NotificationType() NotificationType {
	return resourceNotificationTypes[k]
}

// DefaultTitle is the notification title used when the sharer gives none.
func (k ResourceKind) DefaultTitle() string {
	return resourceTitles[k]
}
