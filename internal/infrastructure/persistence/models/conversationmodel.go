package models

import (
	"time"

	"cabinet/internal/shared/constants"
)

type CabinetConversationModel struct {
	ID        string                           `gorm:"primaryKey;size:36"`
	CabinetID string                           `gorm:"size:36;not null;index"`
	Name      string                           `gorm:"size:100;not null"`
	CreatedBy string                           `gorm:"size:36;not null"`
	Members   []CabinetConversationMemberModel `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (CabinetConversationModel) TableName() string {
	return constants.TableCabinetConversations
}

type CabinetConversationMemberModel struct {
	ConversationID string `gorm:"primaryKey;size:36"`
	UserID         string `gorm:"primaryKey;size:36;index"`
}

func (CabinetConversationMemberModel) TableName() string {
	return constants.TableCabinetConversationMember
}
