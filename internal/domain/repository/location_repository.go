// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"society/internal/domain/entity"
	"society/internal/errors"
)

// Domain-specific errors for location persistence.
var (
	// ErrLocationNotFound is returned when a location is not found.
	ErrLocationNotFound = errors.New("location not found")
	// ErrDuplicateExternalID is returned when a write collides with another record's external id.
	ErrDuplicateExternalID = errors.New("external id already belongs to another record")
)

// LocationFilter narrows ListLocations. Empty fields are ignored.
type LocationFilter struct {
	CountryCode  string                   // Case-insensitive equality.
	Category     *entity.LocationCategory // Exact match.
	NameContains string                   // Case-insensitive substring.
}

// LocationRepository defines the interface for location-related database operations.
type LocationRepository interface {
	// CreateLocation persists a new location and fills in its ID.
	CreateLocation(ctx context.Context, location *entity.Location) error

	// UpdateLocation overwrites every attribute of an existing location.
	UpdateLocation(ctx context.Context, location *entity.Location) error

	// FindLocationByID retrieves a location by its ID.
	FindLocationByID(ctx context.Context, id int64) (*entity.Location, error)

	// FindLocationByExternalID retrieves a location by related_store_external_id.
	FindLocationByExternalID(ctx context.Context, externalID string) (*entity.Location, error)

	// FindLocationByNameAndCountry is the fallback natural key for imports without an external id.
	FindLocationByNameAndCountry(ctx context.Context, name, countryCode string) (*entity.Location, error)

	// FindLocationsByName matches names case-insensitively, exactly or by substring.
	FindLocationsByName(ctx context.Context, name string, exact bool) ([]*entity.Location, error)

	// ListLocations returns every location matching the filter, unordered.
	ListLocations(ctx context.Context, filter LocationFilter) ([]*entity.Location, error)

	// DeleteLocation removes the location row. Dependent rows are the caller's concern.
	DeleteLocation(ctx context.Context, id int64) error
}
