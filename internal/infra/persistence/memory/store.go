// Package memory is an in-process implementation of the directory
// repositories. It backs the "memory" storage driver and the use case tests.
package memory

import (
	"context"
	"sync"
	"time"

	"society/internal/domain/entity"
	"society/internal/domain/repository"
)

// locker is satisfied by *sync.RWMutex, and by noLock inside a transaction
// where Store.Execute already holds the write lock.
type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}

// dataset is the full state of the store.
type dataset struct {
	locations map[int64]*entity.Location
	events    map[int64]*entity.Event
	profiles  map[int64]*entity.MemberProfile
	saved     map[int64]map[int64]struct{} // profile ID -> event IDs

	nextLocationID int64
	nextEventID    int64
	nextProfileID  int64
}

func newDataset() *dataset {
	return &dataset{
		locations:      make(map[int64]*entity.Location),
		events:         make(map[int64]*entity.Event),
		profiles:       make(map[int64]*entity.MemberProfile),
		saved:          make(map[int64]map[int64]struct{}),
		nextLocationID: 1,
		nextEventID:    1,
		nextProfileID:  1,
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		locations:      make(map[int64]*entity.Location, len(d.locations)),
		events:         make(map[int64]*entity.Event, len(d.events)),
		profiles:       make(map[int64]*entity.MemberProfile, len(d.profiles)),
		saved:          make(map[int64]map[int64]struct{}, len(d.saved)),
		nextLocationID: d.nextLocationID,
		nextEventID:    d.nextEventID,
		nextProfileID:  d.nextProfileID,
	}
	for id, l := range d.locations {
		c.locations[id] = cloneLocation(l)
	}
	for id, e := range d.events {
		c.events[id] = cloneEvent(e)
	}
	for id, p := range d.profiles {
		c.profiles[id] = cloneProfile(p)
	}
	for id, set := range d.saved {
		cs := make(map[int64]struct{}, len(set))
		for eventID := range set {
			cs[eventID] = struct{}{}
		}
		c.saved[id] = cs
	}

	return c
}

// Store holds locations, events and member profiles in memory.
// All reads return copies.
type Store struct {
	mu   sync.RWMutex
	data *dataset
	now  func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		data: newDataset(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Locations returns the location repository view of the store.
func (s *Store) Locations() repository.LocationRepository {
	return &locationRepository{d: s.data, mu: &s.mu, now: s.now}
}

// Events returns the event repository view of the store.
func (s *Store) Events() repository.EventRepository {
	return &eventRepository{d: s.data, mu: &s.mu, now: s.now}
}

// MemberProfiles returns the member profile repository view of the store.
func (s *Store) MemberProfiles() repository.MemberProfileRepository {
	return &memberProfileRepository{d: s.data, mu: &s.mu, now: s.now}
}

// Execute runs fn while holding the store's write lock. If fn fails every
// change it made is discarded.
func (s *Store) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			*s.data = *snapshot
		}
	}()

	if err := fn(&txFactory{d: s.data, now: s.now}); err != nil {
		return err
	}
	committed = true

	return nil
}

// txFactory hands out repositories that share the lock held by Execute.
type txFactory struct {
	d   *dataset
	now func() time.Time
}

func (f *txFactory) NewLocationRepository() repository.LocationRepository {
	return &locationRepository{d: f.d, mu: noLock{}, now: f.now}
}

func (f *txFactory) NewEventRepository() repository.EventRepository {
	return &eventRepository{d: f.d, mu: noLock{}, now: f.now}
}

func (f *txFactory) NewMemberProfileRepository() repository.MemberProfileRepository {
	return &memberProfileRepository{d: f.d, mu: noLock{}, now: f.now}
}

func cloneLocation(l *entity.Location) *entity.Location {
	if l == nil {
		return nil
	}
	c := *l
	if l.Website != nil {
		w := *l.Website
		c.Website = &w
	}
	if l.Coordinates != nil {
		p := *l.Coordinates
		c.Coordinates = &p
	}

	return &c
}

func cloneEvent(e *entity.Event) *entity.Event {
	c := *e
	if e.EndDate != nil {
		end := *e.EndDate
		c.EndDate = &end
	}
	c.Location = nil

	return &c
}

func cloneProfile(p *entity.MemberProfile) *entity.MemberProfile {
	c := *p
	c.Interests = append([]string{}, p.Interests...)
	c.SavedEventIDs = nil

	return &c
}
