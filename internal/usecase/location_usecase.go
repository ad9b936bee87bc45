package usecase

import (
	"context"

	"society/internal/domain/entity"
)

// LocationQuery narrows ListLocations. Empty fields are ignored.
type LocationQuery struct {
	CountryCode  string
	Category     *entity.LocationCategory
	NameContains string
}

// LocationInput carries every writable attribute of a location.
type LocationInput struct {
	Name                   string   `json:"name" validate:"required,max=200"`
	Category               string   `json:"category" validate:"omitempty,max=20"`
	Address                string   `json:"address"`
	Website                string   `json:"website" validate:"omitempty,max=200"`
	CountryCode            string   `json:"country_code" validate:"required,len=2,alpha"`
	RelatedStoreExternalID string   `json:"related_store_external_id" validate:"omitempty,max=100"`
	Latitude               *float64 `json:"lat" validate:"required,latitude"`
	Longitude              *float64 `json:"lng" validate:"required,longitude"`
}

// LocationUsecase defines the directory operations on locations.
type LocationUsecase interface {
	// ListLocations returns matching locations sorted by country code, name and ID.
	ListLocations(ctx context.Context, query LocationQuery) ([]*entity.Location, error)

	// Administrative CRUD
	GetLocation(ctx context.Context, id int64) (*entity.Location, error)
	CreateLocation(ctx context.Context, input *LocationInput) (*entity.Location, error)
	UpdateLocation(ctx context.Context, id int64, input *LocationInput) (*entity.Location, error)

	// DeleteLocation removes the location with all of its events and drops
	// those events from every saved set, atomically.
	DeleteLocation(ctx context.Context, id int64) error
}
