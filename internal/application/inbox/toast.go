package inbox

import "time"

const toastErrorTitle = "Erreur"

// Failure descriptions shown to the user.
const (
	msgLoadMembersFailed       = "Impossible de charger les membres du cabinet"
	msgLoadConversationsFailed = "Impossible de charger les conversations"
	msgLoadMessagesFailed      = "Impossible de charger les messages"
	msgSendFailed              = "Impossible d'envoyer le message"
	msgLoadBadgesFailed        = "Impossible de charger les notifications"
	msgMarkReadFailed          = "Impossible de marquer les notifications comme lues"
	msgSubscribeFailed         = "Impossible de recevoir les messages en temps réel"
	msgNoConversationOpen      = "Aucune conversation ouverte"
	msgAmbiguousMention        = "Mention ambiguë, précisez le nom du membre"
)

// maxToasts bounds the pending toast queue; the oldest entries are dropped.
const maxToasts = 20

// Toast is a transient user-facing message.
type Toast struct {
	Title       string
	Description string
	At          time.Time
}
