package repository

import (
	"context"

	"society/internal/domain/entity"
	"society/internal/errors"
)

// Domain-specific errors for member profile persistence.
var (
	// ErrMemberProfileNotFound is returned when a member profile is not found.
	ErrMemberProfileNotFound = errors.New("member profile not found")
	// ErrDuplicateProfile is returned when the user already owns a profile.
	ErrDuplicateProfile = errors.New("user already has a member profile")
)

// MemberProfileRepository defines the interface for member profile operations.
type MemberProfileRepository interface {
	// CreateProfile persists a new profile. A user has at most one profile.
	CreateProfile(ctx context.Context, profile *entity.MemberProfile) error

	// FindProfileByID retrieves a profile with its saved event IDs in ascending order.
	FindProfileByID(ctx context.Context, id int64) (*entity.MemberProfile, error)

	// AddSavedEvent links an event to a profile. Linking twice is a no-op.
	AddSavedEvent(ctx context.Context, profileID, eventID int64) error

	// RemoveSavedEvent unlinks an event from a profile.
	RemoveSavedEvent(ctx context.Context, profileID, eventID int64) error

	// RemoveEventFromAllProfiles drops the given events from every saved set.
	// Profiles themselves are never touched.
	RemoveEventFromAllProfiles(ctx context.Context, eventIDs ...int64) error
}
