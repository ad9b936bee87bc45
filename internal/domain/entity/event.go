package entity

import "time"

// Event happens at exactly one Location.
type Event struct {
	ID                       int64
	ExternalID               string
	Title                    string
	Description              string
	BannerImage              string
	EventType                EventType
	StartDate                time.Time
	EndDate                  *time.Time
	DesignTemplateExternalID string
	LocationID               int64
	Location                 *Location // Resolved on reads; nil on writes.
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// NearbyEvent is an Event matched by a radius search.
type NearbyEvent struct {
	Event      *Event
	DistanceKm float64
}
