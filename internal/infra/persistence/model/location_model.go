package model

import "time"

// LocationModel is the GORM-specific struct for the 'locations' table.
// The PostGIS 'coordinates' geography column is generated from Longitude and
// Latitude by the migration, so it never appears here.
type LocationModel struct {
	ID                     int64        `gorm:"primaryKey;autoIncrement"`
	Name                   string       `gorm:"type:varchar(200);not null;index"`
	Category               string       `gorm:"type:varchar(20);not null;default:TEMPLE"`
	Address                string       `gorm:"type:text;not null;default:''"`
	Website                *string      `gorm:"type:varchar(200)"`
	CountryCode            string       `gorm:"type:varchar(2);not null;index"`
	RelatedStoreExternalID string       `gorm:"type:varchar(100);not null;default:''"`
	Latitude               float64      `gorm:"type:double precision;not null"`
	Longitude              float64      `gorm:"type:double precision;not null"`
	Events                 []EventModel `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName explicitly sets the table name for GORM.
func (LocationModel) TableName() string {
	return "locations"
}
