package memory

import (
	"context"
	"slices"
	"time"

	"society/internal/domain/entity"
	"society/internal/domain/repository"
)

type memberProfileRepository struct {
	d   *dataset
	mu  locker
	now func() time.Time
}

func (r *memberProfileRepository) CreateProfile(_ context.Context, profile *entity.MemberProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.d.profiles {
		if other.UserID == profile.UserID {
			return repository.ErrDuplicateProfile
		}
	}

	if profile.Interests == nil {
		profile.Interests = []string{}
	}
	now := r.now()
	profile.ID = r.d.nextProfileID
	profile.SavedEventIDs = []int64{}
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.d.nextProfileID++
	r.d.profiles[profile.ID] = cloneProfile(profile)

	return nil
}

func (r *memberProfileRepository) FindProfileByID(_ context.Context, id int64) (*entity.MemberProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.d.profiles[id]
	if !ok {
		return nil, repository.ErrMemberProfileNotFound
	}

	c := cloneProfile(profile)
	c.SavedEventIDs = make([]int64, 0, len(r.d.saved[id]))
	for eventID := range r.d.saved[id] {
		c.SavedEventIDs = append(c.SavedEventIDs, eventID)
	}
	sortIDs(c.SavedEventIDs)

	return c, nil
}

func (r *memberProfileRepository) AddSavedEvent(_ context.Context, profileID, eventID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.d.profiles[profileID]; !ok {
		return repository.ErrMemberProfileNotFound
	}
	if _, ok := r.d.events[eventID]; !ok {
		return repository.ErrEventNotFound
	}

	set, ok := r.d.saved[profileID]
	if !ok {
		set = make(map[int64]struct{})
		r.d.saved[profileID] = set
	}
	set[eventID] = struct{}{}

	return nil
}

func (r *memberProfileRepository) RemoveSavedEvent(_ context.Context, profileID, eventID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.d.saved[profileID], eventID)

	return nil
}

func (r *memberProfileRepository) RemoveEventFromAllProfiles(_ context.Context, eventIDs ...int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, set := range r.d.saved {
		for _, eventID := range eventIDs {
			delete(set, eventID)
		}
	}

	return nil
}

func sortIDs(ids []int64) {
	slices.Sort(ids)
}
