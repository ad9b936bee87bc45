package memory

import (
	"context"
	"strings"
	"time"

	"society/internal/domain/entity"
	"society/internal/domain/repository"
)

type eventRepository struct {
	d   *dataset
	mu  locker
	now func() time.Time
}

func (r *eventRepository) CreateEvent(_ context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.d.checkEventWrite(event); err != nil {
		return err
	}

	now := r.now()
	event.ID = r.d.nextEventID
	event.CreatedAt = now
	event.UpdatedAt = now
	r.d.nextEventID++
	r.d.events[event.ID] = cloneEvent(event)

	return nil
}

func (r *eventRepository) UpdateEvent(_ context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.d.events[event.ID]
	if !ok {
		return repository.ErrEventNotFound
	}
	if err := r.d.checkEventWrite(event); err != nil {
		return err
	}

	event.CreatedAt = current.CreatedAt
	event.UpdatedAt = r.now()
	r.d.events[event.ID] = cloneEvent(event)

	return nil
}

func (r *eventRepository) FindEventByID(_ context.Context, id int64) (*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.d.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}

	return r.d.resolve(event), nil
}

func (r *eventRepository) FindEventByExternalID(_ context.Context, externalID string) (*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, event := range r.d.events {
		if event.ExternalID == externalID {
			return r.d.resolve(event), nil
		}
	}

	return nil, repository.ErrEventNotFound
}

func (r *eventRepository) ListEvents(_ context.Context, filter repository.EventFilter) ([]*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*entity.Event, 0, len(r.d.events))
	for _, event := range r.d.events {
		if filter.LocationID != 0 && event.LocationID != filter.LocationID {
			continue
		}
		if filter.EventType != nil && event.EventType != *filter.EventType {
			continue
		}
		if filter.CountryCode != "" {
			location := r.d.locations[event.LocationID]
			if location == nil || !strings.EqualFold(location.CountryCode, filter.CountryCode) {
				continue
			}
		}
		events = append(events, r.d.resolve(event))
	}

	return events, nil
}

func (r *eventRepository) FindEventsWithinRadius(_ context.Context, query repository.RadiusQuery) ([]*entity.NearbyEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bound := entity.RadiusBound(query.Center, query.RadiusKm)
	// A bound that wraps the antimeridian cannot be used as a pre-filter.
	usableBound := bound.Min.Lon() <= bound.Max.Lon()

	distances := make(map[int64]float64)
	for id, location := range r.d.locations {
		if location.Coordinates == nil {
			continue
		}
		if usableBound && !bound.Contains(*location.Coordinates) {
			continue
		}
		if d := entity.DistanceKm(query.Center, *location.Coordinates); d <= query.RadiusKm {
			distances[id] = d
		}
	}

	results := make([]*entity.NearbyEvent, 0)
	for _, event := range r.d.events {
		distance, ok := distances[event.LocationID]
		if !ok {
			continue
		}
		if query.EventType != nil && event.EventType != *query.EventType {
			continue
		}
		results = append(results, &entity.NearbyEvent{
			Event:      r.d.resolve(event),
			DistanceKm: distance,
		})
	}

	return results, nil
}

func (r *eventRepository) FindEventIDsByLocation(_ context.Context, locationID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0)
	for id, event := range r.d.events {
		if event.LocationID == locationID {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)

	return ids, nil
}

func (r *eventRepository) DeleteEvent(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.d.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(r.d.events, id)

	return nil
}

func (r *eventRepository) DeleteEventsByLocation(_ context.Context, locationID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, event := range r.d.events {
		if event.LocationID == locationID {
			delete(r.d.events, id)
			deleted++
		}
	}

	return deleted, nil
}

// checkEventWrite enforces the unique external id and the location reference.
func (d *dataset) checkEventWrite(event *entity.Event) error {
	if _, ok := d.locations[event.LocationID]; !ok {
		return repository.ErrLocationNotFound
	}
	for id, other := range d.events {
		if id != event.ID && other.ExternalID == event.ExternalID {
			return repository.ErrDuplicateExternalID
		}
	}

	return nil
}

// resolve copies an event and attaches a copy of its location.
func (d *dataset) resolve(event *entity.Event) *entity.Event {
	c := cloneEvent(event)
	c.Location = cloneLocation(d.locations[event.LocationID])

	return c
}

