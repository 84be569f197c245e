package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Table names.
const (
	TableCabinets                  = "cabinets"
	TableProfiles                  = "profiles"
	TableCabinetMembers            = "cabinet_members"
	TableCabinetConversations      = "cabinet_conversations"
	TableCabinetConversationMember = "cabinet_conversation_members"
	TableCabinetMessages           = "cabinet_messages"
	TableCabinetNotifications      = "cabinet_notifications"
)

// Gin context keys set by middleware.
const (
	ContextKeyUserID  = "user_id"
	ContextKeyMember  = "cabinet_member"
	ContextKeyCabinet = "cabinet_id"
)
