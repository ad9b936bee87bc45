package model

import "time"

// EventModel is the GORM-specific struct for the 'events' table.
type EventModel struct {
	ID                       int64          `gorm:"primaryKey;autoIncrement"`
	EventExternalID          string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Title                    string         `gorm:"type:varchar(255);not null"`
	Description              string         `gorm:"type:text;not null;default:''"`
	BannerImage              string         `gorm:"type:varchar(200);not null;default:''"`
	EventType                string         `gorm:"type:varchar(20);not null"`
	StartDate                time.Time      `gorm:"type:timestamptz;not null;index"`
	EndDate                  *time.Time     `gorm:"type:timestamptz;check:chk_events_end_after_start,end_date IS NULL OR end_date >= start_date"`
	DesignTemplateExternalID string         `gorm:"type:varchar(100);not null;default:''"`
	LocationID               int64          `gorm:"not null;index"`
	Location                 *LocationModel `gorm:"foreignKey:LocationID"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}
