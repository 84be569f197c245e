package models

import (
	"time"

	"gorm.io/datatypes"

	"cabinet/internal/shared/constants"
)

type CabinetNotificationModel struct {
	ID          string         `gorm:"primaryKey;size:36"`
	CabinetID   string         `gorm:"size:36;not null;index:idx_notification_recipient,priority:1"`
	RecipientID string         `gorm:"size:36;not null;index:idx_notification_recipient,priority:2"`
	ActorID     *string        `gorm:"size:36"`
	Title       string         `gorm:"size:255;not null"`
	Message     string         `gorm:"type:text"`
	Type        string         `gorm:"size:50;not null;index:idx_notification_recipient,priority:4"`
	ReferenceID *string        `gorm:"size:64"`
	IsRead      bool           `gorm:"not null;default:false;index:idx_notification_recipient,priority:3"`
	Payload     datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time      `gorm:"index"`
}

func (CabinetNotificationModel) TableName() string {
	return constants.TableCabinetNotifications
}
