package repository

import (
	"context"

	"society/internal/domain/entity"
	"society/internal/errors"

	"github.com/paulmach/orb"
)

// ErrEventNotFound is returned when an event is not found.
var ErrEventNotFound = errors.New("event not found")

// EventFilter narrows ListEvents. Zero values are ignored.
type EventFilter struct {
	CountryCode string // Matched against the event's location, case-insensitively.
	EventType   *entity.EventType
	LocationID  int64
}

// RadiusQuery selects events whose location lies within RadiusKm of Center.
type RadiusQuery struct {
	Center    orb.Point // (lon, lat), WGS84.
	RadiusKm  float64
	EventType *entity.EventType
}

// EventRepository defines the interface for event-related database operations.
// Reads always resolve Event.Location.
type EventRepository interface {
	// CreateEvent persists a new event and fills in its ID.
	CreateEvent(ctx context.Context, event *entity.Event) error

	// UpdateEvent overwrites every attribute of an existing event.
	UpdateEvent(ctx context.Context, event *entity.Event) error

	// FindEventByID retrieves an event by its ID.
	FindEventByID(ctx context.Context, id int64) (*entity.Event, error)

	// FindEventByExternalID retrieves an event by event_external_id.
	FindEventByExternalID(ctx context.Context, externalID string) (*entity.Event, error)

	// ListEvents returns every event matching the filter, unordered.
	ListEvents(ctx context.Context, filter EventFilter) ([]*entity.Event, error)

	// FindEventsWithinRadius runs the geodesic radius search and reports the
	// distance of each match in kilometers. Results are unordered.
	FindEventsWithinRadius(ctx context.Context, query RadiusQuery) ([]*entity.NearbyEvent, error)

	// FindEventIDsByLocation lists the IDs of every event held by a location.
	FindEventIDsByLocation(ctx context.Context, locationID int64) ([]int64, error)

	// DeleteEvent removes a single event row.
	DeleteEvent(ctx context.Context, id int64) error

	// DeleteEventsByLocation removes every event of a location and returns how many went.
	DeleteEventsByLocation(ctx context.Context, locationID int64) (int64, error)
}
