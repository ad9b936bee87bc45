package usecase

import (
	"context"

	"society/internal/domain/entity"
)

// CreateProfileInput represents the input for creating a member profile.
type CreateProfileInput struct {
	UserID    int64    `json:"user_id" validate:"required,gt=0"`
	HomeCity  string   `json:"home_city" validate:"max=100"`
	Interests []string `json:"interests"`
}

// MemberUsecase defines the membership operations.
type MemberUsecase interface {
	// GetProfile returns the profile with its saved event IDs in ascending order.
	GetProfile(ctx context.Context, id int64) (*entity.MemberProfile, error)

	CreateProfile(ctx context.Context, input *CreateProfileInput) (*entity.MemberProfile, error)
	SaveEvent(ctx context.Context, profileID, eventID int64) error
	UnsaveEvent(ctx context.Context, profileID, eventID int64) error
}
