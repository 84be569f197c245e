package db

import (
	"gorm.io/gorm"
)

// InCabinet restricts a query to one workspace.
//
//	db.Model(&models.CabinetMessageModel{}).Scopes(db.InCabinet(cabinetID)).Find(&rows)
func InCabinet(cabinetID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("cabinet_id = ?", cabinetID)
	}
}

// ForRecipient restricts a notification query to one recipient.
func ForRecipient(recipientID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipient_id = ?", recipientID)
	}
}

// ActiveMembership keeps only members whose status is active, with an optional table alias.
func ActiveMembership(alias string) func(db *gorm.DB) *gorm.DB {
	column := "status"
	if alias != "" {
		column = alias + ".status"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", "active")
	}
}
