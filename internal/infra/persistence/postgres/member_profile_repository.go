package postgres

import (
	"context"

	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/repository"
	"society/internal/errors"
	"society/internal/infra/persistence/model"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// memberProfileRepository implements the repository.MemberProfileRepository interface.
type memberProfileRepository struct {
	db *gorm.DB
}

// NewMemberProfileRepository is the constructor for memberProfileRepository.
func NewMemberProfileRepository(db *gorm.DB) repository.MemberProfileRepository {
	return &memberProfileRepository{
		db: db,
	}
}

// CreateProfile persists a new member profile.
func (repo *memberProfileRepository) CreateProfile(ctx context.Context, profile *entity.MemberProfile) error {
	interests := profile.Interests
	if interests == nil {
		interests = []string{}
	}
	profileM := &model.MemberProfileModel{
		UserID:    profile.UserID,
		HomeCity:  profile.HomeCity,
		Interests: pq.StringArray(interests),
	}

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateProfile
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create member profile")
	}

	profile.ID = profileM.ID
	profile.Interests = interests
	profile.SavedEventIDs = []int64{}
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindProfileByID retrieves a profile and its saved event IDs.
func (repo *memberProfileRepository) FindProfileByID(ctx context.Context, id int64) (*entity.MemberProfile, error) {
	var profileM model.MemberProfileModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find member profile by ID")
	}

	savedIDs := []int64{}
	if err := repo.db.WithContext(ctx).
		Model(&model.SavedEventModel{}).
		Where("member_profile_id = ?", id).
		Order("event_id").
		Pluck("event_id", &savedIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load saved events")
	}

	interests := []string(profileM.Interests)
	if interests == nil {
		interests = []string{}
	}

	return &entity.MemberProfile{
		ID:            profileM.ID,
		UserID:        profileM.UserID,
		HomeCity:      profileM.HomeCity,
		Interests:     interests,
		SavedEventIDs: savedIDs,
		CreatedAt:     profileM.CreatedAt,
		UpdatedAt:     profileM.UpdatedAt,
	}, nil
}

// AddSavedEvent links an event to a profile, ignoring an existing link.
func (repo *memberProfileRepository) AddSavedEvent(ctx context.Context, profileID, eventID int64) error {
	savedM := &model.SavedEventModel{
		MemberProfileID: profileID,
		EventID:         eventID,
	}

	if err := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(savedM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrEventNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save event")
	}

	return nil
}

// RemoveSavedEvent unlinks an event from a profile.
func (repo *memberProfileRepository) RemoveSavedEvent(ctx context.Context, profileID, eventID int64) error {
	if err := repo.db.WithContext(ctx).
		Where("member_profile_id = ? AND event_id = ?", profileID, eventID).
		Delete(&model.SavedEventModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to unsave event")
	}

	return nil
}

// RemoveEventFromAllProfiles drops the events from every saved set.
func (repo *memberProfileRepository) RemoveEventFromAllProfiles(ctx context.Context, eventIDs ...int64) error {
	if len(eventIDs) == 0 {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Where("event_id IN ?", eventIDs).
		Delete(&model.SavedEventModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove events from saved sets")
	}

	return nil
}
