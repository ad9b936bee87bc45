package entity

import (
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// Location is a physical venue with a position. It owns its Events.
type Location struct {
	ID                     int64
	Name                   string
	Category               LocationCategory
	Address                string
	Website                *string
	CountryCode            string
	RelatedStoreExternalID string // Optional natural key used by imports.
	Coordinates            *orb.Point
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Lat returns the latitude, or nil when the location has no position.
func (l *Location) Lat() *float64 {
	if l == nil || l.Coordinates == nil {
		return nil
	}
	lat := l.Coordinates.Lat()

	return &lat
}

// Lng returns the longitude, or nil when the location has no position.
func (l *Location) Lng() *float64 {
	if l == nil || l.Coordinates == nil {
		return nil
	}
	lng := l.Coordinates.Lon()

	return &lng
}

// Normalize trims free text and upper-cases the country code.
func (l *Location) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.Address = strings.TrimSpace(l.Address)
	l.CountryCode = strings.ToUpper(strings.TrimSpace(l.CountryCode))
	l.RelatedStoreExternalID = strings.TrimSpace(l.RelatedStoreExternalID)
	if l.Category == "" {
		l.Category = DefaultLocationCategory
	}
	if l.Website != nil && strings.TrimSpace(*l.Website) == "" {
		l.Website = nil
	}
}
