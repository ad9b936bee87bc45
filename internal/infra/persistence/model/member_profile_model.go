package model

import (
	"time"

	"github.com/lib/pq"
)

// MemberProfileModel is the GORM-specific struct for the 'member_profiles' table.
// UserID references the external user identity table, one profile per user.
type MemberProfileModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	UserID    int64          `gorm:"not null;uniqueIndex"`
	HomeCity  string         `gorm:"type:varchar(100);not null;default:''"`
	Interests pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (MemberProfileModel) TableName() string {
	return "member_profiles"
}

// SavedEventModel is a row of the profile ↔ event saved set.
type SavedEventModel struct {
	MemberProfileID int64               `gorm:"primaryKey"`
	EventID         int64               `gorm:"primaryKey;index"`
	MemberProfile   *MemberProfileModel `gorm:"foreignKey:MemberProfileID;constraint:OnDelete:CASCADE"`
	Event           *EventModel         `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (SavedEventModel) TableName() string {
	return "member_profile_saved_events"
}
