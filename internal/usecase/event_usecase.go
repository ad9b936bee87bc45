package usecase

import (
	"context"
	"time"

	"society/internal/domain/entity"
)

// EventQuery narrows ListEvents. UpcomingOnly only selects the sort direction.
type EventQuery struct {
	CountryCode  string
	EventType    *entity.EventType
	LocationID   int64
	UpcomingOnly bool
}

// NearbyQuery describes a radius search around (Lat, Lng).
// A zero RadiusKm selects the configured default.
type NearbyQuery struct {
	Lat          float64
	Lng          float64
	RadiusKm     float64
	EventType    *entity.EventType
	UpcomingOnly bool
}

// EventInput carries every writable attribute of an event.
type EventInput struct {
	ExternalID               string     `json:"event_external_id" validate:"required,max=100"`
	Title                    string     `json:"title" validate:"required,max=255"`
	Description              string     `json:"description"`
	BannerImage              string     `json:"banner_image" validate:"omitempty,max=200"`
	EventType                string     `json:"event_type" validate:"required"`
	StartDate                time.Time  `json:"start_date" validate:"required"`
	EndDate                  *time.Time `json:"end_date"`
	DesignTemplateExternalID string     `json:"design_template_external_id" validate:"omitempty,max=100"`
	LocationID               int64      `json:"location_id" validate:"required,gt=0"`
}

// EventUsecase defines the directory operations on events.
type EventUsecase interface {
	// ListEvents returns matching events ordered by start date, ascending when
	// UpcomingOnly is set and descending otherwise. ID breaks ties.
	ListEvents(ctx context.Context, query EventQuery) ([]*entity.Event, error)

	// FindNearbyEvents returns the events whose location lies within the radius.
	FindNearbyEvents(ctx context.Context, query NearbyQuery) ([]*entity.NearbyEvent, error)

	// Administrative CRUD
	GetEvent(ctx context.Context, id int64) (*entity.Event, error)
	CreateEvent(ctx context.Context, input *EventInput) (*entity.Event, error)
	UpdateEvent(ctx context.Context, id int64, input *EventInput) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}
