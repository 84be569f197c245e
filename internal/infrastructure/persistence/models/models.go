package models

// All lists every persisted model, in creation order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&CabinetModel{},
		&ProfileModel{},
		&CabinetMemberModel{},
		&CabinetConversationModel{},
		&CabinetConversationMemberModel{},
		&CabinetMessageModel{},
		&CabinetNotificationModel{},
	}
}
