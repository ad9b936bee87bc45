package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"society/config"
	deliverycontext "society/internal/delivery/context"
	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/repository"
	"society/internal/errors"
	"society/internal/usecase"
)

type eventService struct {
	txManager repository.TransactionManager
	eventRepo repository.EventRepository
	directory config.DirectoryConfig
	logger    *slog.Logger
}

// NewEventService creates a new event service instance.
func NewEventService(
	txManager repository.TransactionManager,
	eventRepo repository.EventRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.EventUsecase {
	directory := config.DirectoryConfig{
		DefaultRadiusKm: config.DefaultRadiusKm,
	}
	if cfg != nil && cfg.Directory != nil {
		directory = *cfg.Directory
	}

	return &eventService{
		txManager: txManager,
		eventRepo: eventRepo,
		directory: directory,
		logger:    logger,
	}
}

// ListEvents returns the filtered events sorted by start date.
func (srv *eventService) ListEvents(ctx context.Context, query usecase.EventQuery) ([]*entity.Event, error) {
	events, err := srv.eventRepo.ListEvents(ctx, repository.EventFilter{
		CountryCode: query.CountryCode,
		EventType:   query.EventType,
		LocationID:  query.LocationID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	sortEvents(events, query.UpcomingOnly)

	return events, nil
}

// FindNearbyEvents runs the radius search around the query point.
func (srv *eventService) FindNearbyEvents(ctx context.Context, query usecase.NearbyQuery) ([]*entity.NearbyEvent, error) {
	if !entity.ValidLatLng(query.Lat, query.Lng) {
		return nil, domainerrors.Validation(fmt.Sprintf("coordinates (%g, %g) are out of range", query.Lat, query.Lng))
	}

	radius := query.RadiusKm
	if radius == 0 {
		radius = srv.directory.DefaultRadiusKm
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, domainerrors.Validation(fmt.Sprintf("radius must be a positive number of km, got %g", radius))
	}
	if limit := srv.directory.MaxRadiusKm; limit > 0 && radius > limit {
		return nil, domainerrors.Validation(fmt.Sprintf("radius must be at most %g km, got %g", limit, radius))
	}

	results, err := srv.eventRepo.FindEventsWithinRadius(ctx, repository.RadiusQuery{
		Center:    entity.NewPoint(query.Lat, query.Lng),
		RadiusKm:  radius,
		EventType: query.EventType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find nearby events")
	}
	sortNearby(results, query.UpcomingOnly)

	return results, nil
}

// GetEvent retrieves a single event with its location.
func (srv *eventService) GetEvent(ctx context.Context, id int64) (*entity.Event, error) {
	event, err := srv.eventRepo.FindEventByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to get event")
	}

	return event, nil
}

// CreateEvent validates and stores a new event.
func (srv *eventService) CreateEvent(ctx context.Context, input *usecase.EventInput) (*entity.Event, error) {
	event, err := buildEvent(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewLocationRepository().FindLocationByID(ctx, event.LocationID); err != nil {
			return translateRepoError(err)
		}

		eventRepo := repoFactory.NewEventRepository()
		if err := eventRepo.CreateEvent(ctx, event); err != nil {
			return translateRepoError(err)
		}

		created, err := eventRepo.FindEventByID(ctx, event.ID)
		if err != nil {
			return translateRepoError(err)
		}
		event = created

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Event created",
		slog.Int64("eventID", event.ID),
		slog.String("externalID", event.ExternalID),
	)

	return event, nil
}

// UpdateEvent replaces every attribute of an existing event.
func (srv *eventService) UpdateEvent(ctx context.Context, id int64, input *usecase.EventInput) (*entity.Event, error) {
	event, err := buildEvent(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		eventRepo := repoFactory.NewEventRepository()

		current, err := eventRepo.FindEventByID(ctx, id)
		if err != nil {
			return translateRepoError(err)
		}
		if _, err := repoFactory.NewLocationRepository().FindLocationByID(ctx, event.LocationID); err != nil {
			return translateRepoError(err)
		}

		event.ID = current.ID
		event.CreatedAt = current.CreatedAt
		if err := eventRepo.UpdateEvent(ctx, event); err != nil {
			return translateRepoError(err)
		}

		updated, err := eventRepo.FindEventByID(ctx, id)
		if err != nil {
			return translateRepoError(err)
		}
		event = updated

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update event")
	}

	return event, nil
}

// DeleteEvent removes an event and drops it from every saved set.
func (srv *eventService) DeleteEvent(ctx context.Context, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewMemberProfileRepository().RemoveEventFromAllProfiles(ctx, id); err != nil {
			return err
		}

		return translateRepoError(repoFactory.NewEventRepository().DeleteEvent(ctx, id))
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete event")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Event deleted", slog.Int64("eventID", id))

	return nil
}

// buildEvent turns administrative input into a validated event.
func buildEvent(input *usecase.EventInput) (*entity.Event, error) {
	if input == nil {
		return nil, domainerrors.Validation("event input is required")
	}

	eventType, ok := entity.ParseEventType(input.EventType)
	if !ok {
		return nil, domainerrors.Validation("invalid event_type '" + input.EventType + "'")
	}

	event := &entity.Event{
		ExternalID:               input.ExternalID,
		Title:                    input.Title,
		Description:              input.Description,
		BannerImage:              normalizeURL(input.BannerImage),
		EventType:                eventType,
		StartDate:                input.StartDate,
		EndDate:                  input.EndDate,
		DesignTemplateExternalID: input.DesignTemplateExternalID,
		LocationID:               input.LocationID,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}
