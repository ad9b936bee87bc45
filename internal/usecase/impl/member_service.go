package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "society/internal/delivery/context"
	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/repository"
	"society/internal/errors"
	"society/internal/usecase"
)

// memberService implements the MemberUsecase interface.
type memberService struct {
	txManager  repository.TransactionManager
	memberRepo repository.MemberProfileRepository
	logger     *slog.Logger
}

// NewMemberService is the constructor for memberService.
func NewMemberService(
	txManager repository.TransactionManager,
	memberRepo repository.MemberProfileRepository,
	logger *slog.Logger,
) usecase.MemberUsecase {
	return &memberService{
		txManager:  txManager,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// GetProfile retrieves a profile with its saved events.
func (srv *memberService) GetProfile(ctx context.Context, id int64) (*entity.MemberProfile, error) {
	profile, err := srv.memberRepo.FindProfileByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to get member profile")
	}

	return profile, nil
}

// CreateProfile creates the profile of a user. A user has at most one.
func (srv *memberService) CreateProfile(ctx context.Context, input *usecase.CreateProfileInput) (*entity.MemberProfile, error) {
	if input == nil || input.UserID <= 0 {
		return nil, domainerrors.Validation("user_id is required")
	}

	interests := make([]string, 0, len(input.Interests))
	for _, interest := range input.Interests {
		if interest = strings.TrimSpace(interest); interest != "" {
			interests = append(interests, interest)
		}
	}

	profile := &entity.MemberProfile{
		UserID:    input.UserID,
		HomeCity:  strings.TrimSpace(input.HomeCity),
		Interests: interests,
	}
	if err := srv.memberRepo.CreateProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to create member profile")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Member profile created",
		slog.Int64("profileID", profile.ID),
		slog.Int64("userID", profile.UserID),
	)

	return profile, nil
}

// SaveEvent adds an event to the profile's saved set.
func (srv *memberService) SaveEvent(ctx context.Context, profileID, eventID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberRepo := repoFactory.NewMemberProfileRepository()

		if _, err := memberRepo.FindProfileByID(ctx, profileID); err != nil {
			return translateRepoError(err)
		}
		if _, err := repoFactory.NewEventRepository().FindEventByID(ctx, eventID); err != nil {
			return translateRepoError(err)
		}

		return translateRepoError(memberRepo.AddSavedEvent(ctx, profileID, eventID))
	})
	if err != nil {
		return errors.Wrap(err, "failed to save event")
	}

	return nil
}

// UnsaveEvent removes an event from the profile's saved set.
func (srv *memberService) UnsaveEvent(ctx context.Context, profileID, eventID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberRepo := repoFactory.NewMemberProfileRepository()

		if _, err := memberRepo.FindProfileByID(ctx, profileID); err != nil {
			return translateRepoError(err)
		}

		return memberRepo.RemoveSavedEvent(ctx, profileID, eventID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to unsave event")
	}

	return nil
}
