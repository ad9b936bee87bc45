package memory

import (
	"context"
	"strings"
	"time"

	"society/internal/domain/entity"
	"society/internal/domain/repository"
)

type locationRepository struct {
	d   *dataset
	mu  locker
	now func() time.Time
}

func (r *locationRepository) CreateLocation(_ context.Context, location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.d.externalIDTaken(location.RelatedStoreExternalID, 0) {
		return repository.ErrDuplicateExternalID
	}

	now := r.now()
	location.ID = r.d.nextLocationID
	location.CreatedAt = now
	location.UpdatedAt = now
	r.d.nextLocationID++
	r.d.locations[location.ID] = cloneLocation(location)

	return nil
}

func (r *locationRepository) UpdateLocation(_ context.Context, location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.d.locations[location.ID]
	if !ok {
		return repository.ErrLocationNotFound
	}
	if r.d.externalIDTaken(location.RelatedStoreExternalID, location.ID) {
		return repository.ErrDuplicateExternalID
	}

	location.CreatedAt = current.CreatedAt
	location.UpdatedAt = r.now()
	r.d.locations[location.ID] = cloneLocation(location)

	return nil
}

func (r *locationRepository) FindLocationByID(_ context.Context, id int64) (*entity.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	location, ok := r.d.locations[id]
	if !ok {
		return nil, repository.ErrLocationNotFound
	}

	return cloneLocation(location), nil
}

func (r *locationRepository) FindLocationByExternalID(_ context.Context, externalID string) (*entity.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if externalID != "" {
		for _, location := range r.d.locations {
			if location.RelatedStoreExternalID == externalID {
				return cloneLocation(location), nil
			}
		}
	}

	return nil, repository.ErrLocationNotFound
}

func (r *locationRepository) FindLocationByNameAndCountry(_ context.Context, name, countryCode string) (*entity.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *entity.Location
	for _, location := range r.d.locations {
		if location.Name != name || location.CountryCode != strings.ToUpper(countryCode) {
			continue
		}
		if found == nil || location.ID < found.ID {
			found = location
		}
	}
	if found == nil {
		return nil, repository.ErrLocationNotFound
	}

	return cloneLocation(found), nil
}

func (r *locationRepository) FindLocationsByName(_ context.Context, name string, exact bool) ([]*entity.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	locations := make([]*entity.Location, 0)
	for _, location := range r.d.locations {
		candidate := strings.ToLower(location.Name)
		if (exact && candidate == needle) || (!exact && strings.Contains(candidate, needle)) {
			locations = append(locations, cloneLocation(location))
		}
	}

	return locations, nil
}

func (r *locationRepository) ListLocations(_ context.Context, filter repository.LocationFilter) ([]*entity.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.NameContains)
	locations := make([]*entity.Location, 0, len(r.d.locations))
	for _, location := range r.d.locations {
		if filter.CountryCode != "" && !strings.EqualFold(location.CountryCode, filter.CountryCode) {
			continue
		}
		if filter.Category != nil && location.Category != *filter.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(location.Name), needle) {
			continue
		}
		locations = append(locations, cloneLocation(location))
	}

	return locations, nil
}

func (r *locationRepository) DeleteLocation(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.d.locations[id]; !ok {
		return repository.ErrLocationNotFound
	}
	delete(r.d.locations, id)

	return nil
}

// externalIDTaken reports whether a location other than selfID already uses externalID.
func (d *dataset) externalIDTaken(externalID string, selfID int64) bool {
	if externalID == "" {
		return false
	}
	for id, location := range d.locations {
		if id != selfID && location.RelatedStoreExternalID == externalID {
			return true
		}
	}

	return false
}
