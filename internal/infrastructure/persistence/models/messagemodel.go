package models

import (
	"time"

	"cabinet/internal/shared/constants"
)

// CabinetMessageModel keeps the two nullable target columns; at most one is set.
type CabinetMessageModel struct {
	ID             string    `gorm:"primaryKey;size:36"`
	CabinetID      string    `gorm:"size:36;not null;index:idx_message_cabinet_created,priority:1"`
	SenderID       string    `gorm:"size:36;not null;index"`
	RecipientID    *string   `gorm:"size:36;index"`
	ConversationID *string   `gorm:"size:36;index"`
	Message        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"index:idx_message_cabinet_created,priority:2"`
}

func (CabinetMessageModel) TableName() string {
	return constants.TableCabinetMessages
}
