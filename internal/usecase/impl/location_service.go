// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "society/internal/delivery/context"
	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/repository"
	"society/internal/errors"
	"society/internal/usecase"
)

type locationService struct {
	txManager    repository.TransactionManager
	locationRepo repository.LocationRepository
	logger       *slog.Logger
}

// NewLocationService creates a new location service instance.
func NewLocationService(
	txManager repository.TransactionManager,
	locationRepo repository.LocationRepository,
	logger *slog.Logger,
) usecase.LocationUsecase {
	return &locationService{
		txManager:    txManager,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// ListLocations returns the filtered directory of locations.
func (srv *locationService) ListLocations(ctx context.Context, query usecase.LocationQuery) ([]*entity.Location, error) {
	locations, err := srv.locationRepo.ListLocations(ctx, repository.LocationFilter{
		CountryCode:  query.CountryCode,
		Category:     query.Category,
		NameContains: query.NameContains,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}
	sortLocations(locations)

	return locations, nil
}

// GetLocation retrieves a single location.
func (srv *locationService) GetLocation(ctx context.Context, id int64) (*entity.Location, error) {
	location, err := srv.locationRepo.FindLocationByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to get location")
	}

	return location, nil
}

// CreateLocation validates and stores a new location.
func (srv *locationService) CreateLocation(ctx context.Context, input *usecase.LocationInput) (*entity.Location, error) {
	location, err := buildLocation(input)
	if err != nil {
		return nil, err
	}

	if err := srv.locationRepo.CreateLocation(ctx, location); err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to create location")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Location created",
		slog.Int64("locationID", location.ID),
		slog.String("name", location.Name),
	)

	return location, nil
}

// UpdateLocation replaces every attribute of an existing location.
func (srv *locationService) UpdateLocation(ctx context.Context, id int64, input *usecase.LocationInput) (*entity.Location, error) {
	location, err := buildLocation(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()

		current, err := locationRepo.FindLocationByID(ctx, id)
		if err != nil {
			return translateRepoError(err)
		}

		location.ID = current.ID
		location.CreatedAt = current.CreatedAt

		return translateRepoError(locationRepo.UpdateLocation(ctx, location))
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update location")
	}

	return location, nil
}

// DeleteLocation removes a location with its events. Saved-event links to
// those events are dropped first; profiles are left intact.
func (srv *locationService) DeleteLocation(ctx context.Context, id int64) error {
	var removedEvents int

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()
		eventRepo := repoFactory.NewEventRepository()
		memberRepo := repoFactory.NewMemberProfileRepository()

		if _, err := locationRepo.FindLocationByID(ctx, id); err != nil {
			return translateRepoError(err)
		}

		eventIDs, err := eventRepo.FindEventIDsByLocation(ctx, id)
		if err != nil {
			return err
		}
		removedEvents = len(eventIDs)

		if err := memberRepo.RemoveEventFromAllProfiles(ctx, eventIDs...); err != nil {
			return err
		}
		if _, err := eventRepo.DeleteEventsByLocation(ctx, id); err != nil {
			return err
		}

		return translateRepoError(locationRepo.DeleteLocation(ctx, id))
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete location")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Location deleted",
		slog.Int64("locationID", id),
		slog.Int("eventsRemoved", removedEvents),
	)

	return nil
}

// buildLocation turns administrative input into a validated location.
func buildLocation(input *usecase.LocationInput) (*entity.Location, error) {
	if input == nil {
		return nil, domainerrors.Validation("location input is required")
	}
	if input.Latitude == nil || input.Longitude == nil {
		return nil, domainerrors.Validation("location coordinates are required")
	}
	point := entity.NewPoint(*input.Latitude, *input.Longitude)

	location := &entity.Location{
		Name:                   input.Name,
		Category:               entity.ParseLocationCategory(input.Category),
		Address:                input.Address,
		Website:                optionalString(normalizeURL(input.Website)),
		CountryCode:            input.CountryCode,
		RelatedStoreExternalID: input.RelatedStoreExternalID,
		Coordinates:            &point,
	}
	location.Normalize()

	if err := location.Validate(); err != nil {
		return nil, err
	}

	return location, nil
}
