package impl

import (
	"context"
	"testing"

	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationService_ListLocations_SortedAndFiltered(t *testing.T) {
	f := newTestFixture(t)
	seedImportedLocations(t, f)
	ctx := context.Background()

	all, err := f.locations.ListLocations(ctx, usecase.LocationQuery{})
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, location := range all {
		names = append(names, location.Name)
	}
	assert.Equal(t, []string{"Buddhavihara (Birmingham)", "Wat Arun", "Wat Pho"}, names)

	partner := entity.CategoryPartner
	partners, err := f.locations.ListLocations(ctx, usecase.LocationQuery{Category: &partner})
	require.NoError(t, err)
	require.Len(t, partners, 1)
	assert.Equal(t, "GB", partners[0].CountryCode)

	thai, err := f.locations.ListLocations(ctx, usecase.LocationQuery{CountryCode: "th", NameContains: "ARUN"})
	require.NoError(t, err)
	require.Len(t, thai, 1)
	assert.Equal(t, "Wat Arun", thai[0].Name)
}

func TestLocationService_CreateAndUpdate(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	input := &usecase.LocationInput{
		Name:                   "Sunday Market",
		Category:               "market",
		Website:                "market.example.org",
		CountryCode:            "gb",
		RelatedStoreExternalID: "M-1",
		Latitude:               floatPtr(51.5072),
		Longitude:              floatPtr(-0.1276),
	}
	created, err := f.locations.CreateLocation(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryMarket, created.Category)
	assert.Equal(t, "GB", created.CountryCode)
	require.NotNil(t, created.Website)
	assert.Equal(t, "https://market.example.org", *created.Website)
	assert.InDelta(t, 51.5072, *created.Lat(), 1e-12)
	assert.InDelta(t, -0.1276, *created.Lng(), 1e-12)

	_, err = f.locations.CreateLocation(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrConstraintViolation)

	input.Website = ""
	input.Name = "Sunday Farmers Market"
	updated, err := f.locations.UpdateLocation(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Nil(t, updated.Website)

	found, err := f.locations.GetLocation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunday Farmers Market", found.Name)

	_, err = f.locations.UpdateLocation(ctx, 9999, input)
	assert.ErrorIs(t, err, domainerrors.ErrLocationNotFound)
}

func TestLocationService_CreateLocation_Validation(t *testing.T) {
	f := newTestFixture(t)

	tests := []struct {
		name  string
		input *usecase.LocationInput
	}{
		{name: "nil input", input: nil},
		{name: "missing name", input: &usecase.LocationInput{CountryCode: "TH", Latitude: floatPtr(1), Longitude: floatPtr(1)}},
		{name: "missing coordinates", input: &usecase.LocationInput{Name: "A", CountryCode: "TH"}},
		{name: "latitude out of range", input: &usecase.LocationInput{Name: "A", CountryCode: "TH", Latitude: floatPtr(95), Longitude: floatPtr(1)}},
		{name: "bad country code", input: &usecase.LocationInput{Name: "A", CountryCode: "THA", Latitude: floatPtr(1), Longitude: floatPtr(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.locations.CreateLocation(context.Background(), tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestLocationService_DeleteLocation_Cascades(t *testing.T) {
	f := newTestFixture(t)
	seedDirectory(t, f)
	ctx := context.Background()

	profile, err := f.members.CreateProfile(ctx, &usecase.CreateProfileInput{UserID: 1, HomeCity: "Bangkok"})
	require.NoError(t, err)

	events, err := f.events.ListEvents(ctx, usecase.EventQuery{UpcomingOnly: true})
	require.NoError(t, err)
	var watPhoID int64
	for _, event := range events {
		require.NoError(t, f.members.SaveEvent(ctx, profile.ID, event.ID))
		if event.Location.Name == "Wat Pho" {
			watPhoID = event.LocationID
		}
	}
	require.NotZero(t, watPhoID)

	require.NoError(t, f.locations.DeleteLocation(ctx, watPhoID))

	remaining, err := f.events.ListEvents(ctx, usecase.EventQuery{UpcomingOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"E-4", "E-2"}, externalIDs(remaining))

	reloaded, err := f.members.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{remaining[1].ID, remaining[0].ID}, reloaded.SavedEventIDs)

	assert.ErrorIs(t, f.locations.DeleteLocation(ctx, watPhoID), domainerrors.ErrLocationNotFound)
}
