package valueobjects

import "fmt"

// Tab is a notification badge bucket.
type Tab string

const (
	TabDocuments Tab = "documents"
	TabDossiers  Tab = "dossiers"
	TabClients   Tab = "clients"
)

// tabTypes groups notification types under their tab. Message notifications
// count toward the clients badge; this mirrors the existing product behaviour
// and is kept until product confirms the intended bucket.
var tabTypes = map[Tab][]NotificationType{
	TabDocuments: {NotificationTypeDocument, NotificationTypeContrat},
	TabDossiers:  {NotificationTypeDossier},
	TabClients:   {NotificationTypeClient, NotificationTypeMessage},
}

// AllTabs lists the tabs in display order.
func AllTabs() []Tab {
	return []Tab{TabDocuments, TabDossiers, TabClients}
}

func (t Tab) String() string {
	return string(t)
}

func (t Tab) IsValid() bool {
	_, ok := tabTypes[t]
	return ok
}

// Types returns the notification types counted by this tab.
func (t Tab) Types() []NotificationType {
	types := tabTypes[t]
	out := make([]NotificationType, len(types))
	copy(out, types)
	return out
}

// TabOf returns the tab a notification type is counted under.
func TabOf(nt NotificationType) (Tab, bool) {
	for _, tab := range AllTabs() {
		for _, candidate := range tabTypes[tab] {
			if candidate == nt {
				return tab, true
			}
		}
	}
	return "", false
}

func NewTab(s string) (Tab, error) {
	t := Tab(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification tab: %s", s)
	}
	return t, nil
}
