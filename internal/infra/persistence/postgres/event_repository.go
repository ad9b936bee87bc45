package postgres

import (
	"context"
	"strings"

	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/repository"
	"society/internal/errors"
	"society/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// findEventsWithinRadiusSQL matches events whose location lies within @meters
// of the point (@lng, @lat) on the WGS84 spheroid.
const findEventsWithinRadiusSQL = `
SELECT events.*,
       ST_Distance(locations.coordinates, ST_SetSRID(ST_MakePoint(@lng, @lat), 4326)::geography) / 1000.0 AS distance_km
FROM events
JOIN locations ON locations.id = events.location_id
WHERE locations.coordinates IS NOT NULL
  AND ST_DWithin(locations.coordinates, ST_SetSRID(ST_MakePoint(@lng, @lat), 4326)::geography, @meters)`

// eventRepository implements the repository.EventRepository interface.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{
		db: db,
	}
}

// CreateEvent persists a new event.
func (repo *eventRepository) CreateEvent(ctx context.Context, event *entity.Event) error {
	eventM := fromEventDomain(event)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(eventM).Error; err != nil {
		return translateEventWriteError(err, "failed to create event")
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt
	event.UpdatedAt = eventM.UpdatedAt

	return nil
}

// UpdateEvent overwrites every mutable column of the event.
func (repo *eventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	eventM := fromEventDomain(event)

	result := repo.db.WithContext(ctx).
		Model(&model.EventModel{ID: event.ID}).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(eventM)
	if result.Error != nil {
		return translateEventWriteError(result.Error, "failed to update event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	event.UpdatedAt = eventM.UpdatedAt

	return nil
}

// FindEventByID retrieves an event with its location.
func (repo *eventRepository) FindEventByID(ctx context.Context, id int64) (*entity.Event, error) {
	var eventM model.EventModel

	if err := repo.db.WithContext(ctx).
		Preload("Location").
		Where("id = ?", id).
		First(&eventM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEventNotFound
		}

		return nil, errors.Wrap(err, "failed to find event by ID")
	}

	return toEventDomain(&eventM), nil
}

// FindEventByExternalID reads from the primary and locks the row for the
// duration of the surrounding upsert.
func (repo *eventRepository) FindEventByExternalID(ctx context.Context, externalID string) (*entity.Event, error) {
	var eventM model.EventModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("event_external_id = ?", externalID).
		First(&eventM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEventNotFound
		}

		return nil, errors.Wrap(err, "failed to find event by external ID")
	}

	return toEventDomain(&eventM), nil
}

// ListEvents retrieves every event matching the filter with its location.
func (repo *eventRepository) ListEvents(ctx context.Context, filter repository.EventFilter) ([]*entity.Event, error) {
	var eventModels []*model.EventModel

	query := repo.db.WithContext(ctx).Preload("Location")
	if filter.CountryCode != "" {
		query = query.Where("location_id IN (?)",
			repo.db.Model(&model.LocationModel{}).
				Select("id").
				Where("UPPER(country_code) = ?", strings.ToUpper(filter.CountryCode)),
		)
	}
	if filter.EventType != nil {
		query = query.Where("event_type = ?", string(*filter.EventType))
	}
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}

	events := make([]*entity.Event, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toEventDomain(eventM))
	}

	return events, nil
}

type nearbyEventRow struct {
	model.EventModel `gorm:"embedded"`
	DistanceKm       float64 `gorm:"column:distance_km"`
}

// FindEventsWithinRadius runs the PostGIS radius search.
func (repo *eventRepository) FindEventsWithinRadius(ctx context.Context, query repository.RadiusQuery) ([]*entity.NearbyEvent, error) {
	sql := findEventsWithinRadiusSQL
	args := map[string]any{
		"lng":    query.Center.Lon(),
		"lat":    query.Center.Lat(),
		"meters": query.RadiusKm * 1000.0,
	}
	if query.EventType != nil {
		sql += "\n  AND events.event_type = @event_type"
		args["event_type"] = string(*query.EventType)
	}

	var rows []nearbyEventRow
	if err := repo.db.WithContext(ctx).Raw(sql, args).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find events within radius")
	}
	if len(rows) == 0 {
		return []*entity.NearbyEvent{}, nil
	}

	locations, err := repo.loadLocations(ctx, rows)
	if err != nil {
		return nil, err
	}

	results := make([]*entity.NearbyEvent, 0, len(rows))
	for i := range rows {
		event := toEventDomain(&rows[i].EventModel)
		event.Location = locations[event.LocationID]
		results = append(results, &entity.NearbyEvent{
			Event:      event,
			DistanceKm: rows[i].DistanceKm,
		})
	}

	return results, nil
}

func (repo *eventRepository) loadLocations(ctx context.Context, rows []nearbyEventRow) (map[int64]*entity.Location, error) {
	ids := make([]int64, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	for i := range rows {
		if _, ok := seen[rows[i].LocationID]; ok {
			continue
		}
		seen[rows[i].LocationID] = struct{}{}
		ids = append(ids, rows[i].LocationID)
	}

	var locationModels []*model.LocationModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&locationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load event locations")
	}

	locations := make(map[int64]*entity.Location, len(locationModels))
	for _, locationM := range locationModels {
		locations[locationM.ID] = toLocationDomain(locationM)
	}

	return locations, nil
}

// FindEventIDsByLocation lists the IDs of the events held by a location.
func (repo *eventRepository) FindEventIDsByLocation(ctx context.Context, locationID int64) ([]int64, error) {
	var ids []int64

	if err := repo.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("location_id = ?", locationID).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find event IDs by location")
	}

	return ids, nil
}

// DeleteEvent removes a single event row.
func (repo *eventRepository) DeleteEvent(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.EventModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

// DeleteEventsByLocation removes every event of a location.
func (repo *eventRepository) DeleteEventsByLocation(ctx context.Context, locationID int64) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Delete(&model.EventModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete events by location")
	}

	return result.RowsAffected, nil
}

func translateEventWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return repository.ErrDuplicateExternalID
	}
	if isForeignKeyConstraintViolation(err) {
		return repository.ErrLocationNotFound
	}
	if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
		return domainerrors.Validation(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func fromEventDomain(event *entity.Event) *model.EventModel {
	return &model.EventModel{
		ID:                       event.ID,
		EventExternalID:          event.ExternalID,
		Title:                    event.Title,
		Description:              event.Description,
		BannerImage:              event.BannerImage,
		EventType:                string(event.EventType),
		StartDate:                event.StartDate,
		EndDate:                  event.EndDate,
		DesignTemplateExternalID: event.DesignTemplateExternalID,
		LocationID:               event.LocationID,
		CreatedAt:                event.CreatedAt,
		UpdatedAt:                event.UpdatedAt,
	}
}

func toEventDomain(eventM *model.EventModel) *entity.Event {
	event := &entity.Event{
		ID:                       eventM.ID,
		ExternalID:               eventM.EventExternalID,
		Title:                    eventM.Title,
		Description:              eventM.Description,
		BannerImage:              eventM.BannerImage,
		EventType:                entity.EventType(eventM.EventType),
		StartDate:                eventM.StartDate,
		EndDate:                  eventM.EndDate,
		DesignTemplateExternalID: eventM.DesignTemplateExternalID,
		LocationID:               eventM.LocationID,
		CreatedAt:                eventM.CreatedAt,
		UpdatedAt:                eventM.UpdatedAt,
	}
	if eventM.Location != nil {
		event.Location = toLocationDomain(eventM.Location)
	}

	return event
}
