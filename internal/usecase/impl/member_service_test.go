package impl

import (
	"context"
	"testing"

	domainerrors "society/internal/domain/errors"
	"society/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberService_GetProfile_NotFound(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.members.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, domainerrors.ErrMemberProfileNotFound)
	assert.Equal(t, "MEMBER_PROFILE_NOT_FOUND", domainerrors.Code(err))
}

func TestMemberService_ProfileLifecycle(t *testing.T) {
	f := newTestFixture(t)
	seedDirectory(t, f)
	ctx := context.Background()

	profile, err := f.members.CreateProfile(ctx, &usecase.CreateProfileInput{
		UserID:    7,
		HomeCity:  " Leeds ",
		Interests: []string{"meditation", " ", "food"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Leeds", profile.HomeCity)
	assert.Equal(t, []string{"meditation", "food"}, profile.Interests)

	_, err = f.members.CreateProfile(ctx, &usecase.CreateProfileInput{UserID: 7})
	assert.ErrorIs(t, err, domainerrors.ErrConstraintViolation)

	events, err := f.events.ListEvents(ctx, usecase.EventQuery{UpcomingOnly: true})
	require.NoError(t, err)
	require.NoError(t, f.members.SaveEvent(ctx, profile.ID, events[2].ID))
	require.NoError(t, f.members.SaveEvent(ctx, profile.ID, events[0].ID))

	found, err := f.members.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, sortedPair(events[0].ID, events[2].ID), found.SavedEventIDs)

	assert.ErrorIs(t, f.members.SaveEvent(ctx, profile.ID, 9999), domainerrors.ErrEventNotFound)
	assert.ErrorIs(t, f.members.SaveEvent(ctx, 9999, events[0].ID), domainerrors.ErrMemberProfileNotFound)

	require.NoError(t, f.events.DeleteEvent(ctx, events[0].ID))
	found, err = f.members.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{events[2].ID}, found.SavedEventIDs)

	require.NoError(t, f.members.UnsaveEvent(ctx, profile.ID, events[2].ID))
	found, err = f.members.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Empty(t, found.SavedEventIDs)
}

func TestMemberService_CreateProfile_RequiresUser(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.members.CreateProfile(context.Background(), &usecase.CreateProfileInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func sortedPair(a, b int64) []int64 {
	if a > b {
		return []int64{b, a}
	}

	return []int64{a, b}
}
