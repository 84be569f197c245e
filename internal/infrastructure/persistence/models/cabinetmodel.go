package models

import (
	"time"

	"cabinet/internal/shared/constants"
)

type CabinetModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

func (CabinetModel) TableName() string {
	return constants.TableCabinets
}

type ProfileModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	PhotoURL  string `gorm:"size:512"`
}

func (ProfileModel) TableName() string {
	return constants.TableProfiles
}

type CabinetMemberModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	CabinetID   string `gorm:"size:36;not null;uniqueIndex:idx_cabinet_member,priority:1"`
	UserID      string `gorm:"size:36;not null;uniqueIndex:idx_cabinet_member,priority:2"`
	RoleCabinet string `gorm:"column:role_cabinet;size:50;not null;default:'member'"`
	Status      string `gorm:"size:20;not null;default:'active';index"`
	Email       string `gorm:"size:255"`
	CreatedAt   time.Time
}

func (CabinetMemberModel) TableName() string {
	return constants.TableCabinetMembers
}

// CabinetMemberWithProfile is a member row joined with its (optional) profile.
type CabinetMemberWithProfile struct {
	CabinetMemberModel
	FirstName *string
	LastName  *string
	PhotoURL  *string
}
