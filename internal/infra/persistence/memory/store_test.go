package memory

import (
	"context"
	"testing"
	"time"

	"society/internal/domain/entity"
	"society/internal/domain/repository"
	"society/internal/errors"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointOf(lat, lng float64) *orb.Point {
	p := entity.NewPoint(lat, lng)

	return &p
}

func seedLocation(t *testing.T, s *Store, name, externalID string, lat, lng float64) *entity.Location {
	t.Helper()

	location := &entity.Location{
		Name:                   name,
		Category:               entity.CategoryTemple,
		CountryCode:            "TH",
		RelatedStoreExternalID: externalID,
		Coordinates:            pointOf(lat, lng),
	}
	require.NoError(t, s.Locations().CreateLocation(context.Background(), location))

	return location
}

func seedEvent(t *testing.T, s *Store, externalID string, locationID int64) *entity.Event {
	t.Helper()

	event := &entity.Event{
		ExternalID: externalID,
		Title:      "Event " + externalID,
		EventType:  entity.EventTypeReligious,
		StartDate:  time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC),
		LocationID: locationID,
	}
	require.NoError(t, s.Events().CreateEvent(context.Background(), event))

	return event
}

func TestStore_LocationUniqueExternalID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedLocation(t, s, "Wat Pho", "S-1", 13.7465, 100.4927)

	err := s.Locations().CreateLocation(ctx, &entity.Location{
		Name:                   "Other",
		CountryCode:            "TH",
		RelatedStoreExternalID: "S-1",
		Coordinates:            pointOf(1, 1),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateExternalID)

	// Empty external ids never collide.
	seedLocation(t, s, "A", "", 1, 1)
	seedLocation(t, s, "B", "", 2, 2)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	created := seedLocation(t, s, "Wat Pho", "S-1", 13.7465, 100.4927)

	found, err := s.Locations().FindLocationByID(ctx, created.ID)
	require.NoError(t, err)
	found.Name = "mutated"
	found.Coordinates[0] = 0

	again, err := s.Locations().FindLocationByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wat Pho", again.Name)
	assert.InDelta(t, 100.4927, *again.Lng(), 1e-9)
}

func TestStore_ListLocationsFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedLocation(t, s, "Wat Pho", "", 13.7465, 100.4927)
	seedLocation(t, s, "Wat Arun", "", 13.7437, 100.4888)
	market := &entity.Location{
		Name:        "Chatuchak Market",
		Category:    entity.CategoryMarket,
		CountryCode: "TH",
		Coordinates: pointOf(13.7999, 100.5500),
	}
	require.NoError(t, s.Locations().CreateLocation(ctx, market))

	all, err := s.Locations().ListLocations(ctx, repository.LocationFilter{CountryCode: "th"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	wat, err := s.Locations().ListLocations(ctx, repository.LocationFilter{NameContains: "WAT"})
	require.NoError(t, err)
	assert.Len(t, wat, 2)

	category := entity.CategoryMarket
	markets, err := s.Locations().ListLocations(ctx, repository.LocationFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, market.ID, markets[0].ID)
}

func TestStore_FindEventsWithinRadius(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	near := seedLocation(t, s, "Wat Pho", "", 13.7465, 100.4927)
	far := seedLocation(t, s, "Wat Phra That Doi Suthep", "", 18.8048, 98.9216)
	seedEvent(t, s, "E-1", near.ID)
	seedEvent(t, s, "E-2", far.ID)

	results, err := s.Events().FindEventsWithinRadius(ctx, repository.RadiusQuery{
		Center:   entity.NewPoint(13.7465, 100.4927),
		RadiusKm: 25,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "E-1", results[0].Event.ExternalID)
	assert.InDelta(t, 0, results[0].DistanceKm, 1e-6)
	require.NotNil(t, results[0].Event.Location)
	assert.Equal(t, "Wat Pho", results[0].Event.Location.Name)

	wide, err := s.Events().FindEventsWithinRadius(ctx, repository.RadiusQuery{
		Center:   entity.NewPoint(13.7465, 100.4927),
		RadiusKm: 1000,
	})
	require.NoError(t, err)
	assert.Len(t, wide, 2)
}

func TestStore_FindEventsWithinRadius_AcrossAntimeridian(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	fiji := seedLocation(t, s, "Suva Market", "", -18.1416, 178.4419)
	seedEvent(t, s, "E-1", fiji.ID)

	results, err := s.Events().FindEventsWithinRadius(ctx, repository.RadiusQuery{
		Center:   entity.NewPoint(-18.1416, -179.9),
		RadiusKm: 300,
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_EventRequiresLocation(t *testing.T) {
	s := NewStore()

	err := s.Events().CreateEvent(context.Background(), &entity.Event{
		ExternalID: "E-1",
		Title:      "Orphan",
		EventType:  entity.EventTypeConcert,
		StartDate:  time.Now(),
		LocationID: 42,
	})
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)
}

func TestStore_SavedEvents(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	location := seedLocation(t, s, "Wat Pho", "", 13.7465, 100.4927)
	e1 := seedEvent(t, s, "E-1", location.ID)
	e2 := seedEvent(t, s, "E-2", location.ID)

	profile := &entity.MemberProfile{UserID: 7, HomeCity: "Bangkok"}
	require.NoError(t, s.MemberProfiles().CreateProfile(ctx, profile))
	assert.Equal(t, []string{}, profile.Interests)

	err := s.MemberProfiles().CreateProfile(ctx, &entity.MemberProfile{UserID: 7})
	assert.ErrorIs(t, err, repository.ErrDuplicateProfile)

	require.NoError(t, s.MemberProfiles().AddSavedEvent(ctx, profile.ID, e2.ID))
	require.NoError(t, s.MemberProfiles().AddSavedEvent(ctx, profile.ID, e1.ID))
	require.NoError(t, s.MemberProfiles().AddSavedEvent(ctx, profile.ID, e1.ID))

	found, err := s.MemberProfiles().FindProfileByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{e1.ID, e2.ID}, found.SavedEventIDs)

	require.NoError(t, s.MemberProfiles().RemoveEventFromAllProfiles(ctx, e1.ID))
	found, err = s.MemberProfiles().FindProfileByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{e2.ID}, found.SavedEventIDs)

	_, err = s.MemberProfiles().FindProfileByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrMemberProfileNotFound)
}

func TestStore_ExecuteRollsBack(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	location := seedLocation(t, s, "Wat Pho", "", 13.7465, 100.4927)
	seedEvent(t, s, "E-1", location.ID)
	boom := errors.New("boom")

	err := s.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.NewEventRepository().DeleteEventsByLocation(ctx, location.ID); err != nil {
			return err
		}
		if err := f.NewLocationRepository().DeleteLocation(ctx, location.ID); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Locations().FindLocationByID(ctx, location.ID)
	assert.NoError(t, err)
	ids, err := s.Events().FindEventIDsByLocation(ctx, location.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestStore_ExecuteCommits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	location := seedLocation(t, s, "Wat Pho", "", 13.7465, 100.4927)

	err := s.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewLocationRepository().DeleteLocation(ctx, location.ID)
	})
	require.NoError(t, err)

	_, err = s.Locations().FindLocationByID(ctx, location.ID)
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)
}
