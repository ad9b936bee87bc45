package impl

import (
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/repository"
	"society/internal/errors"
)

// translateRepoError maps persistence sentinels onto application error kinds.
// Anything else is returned unchanged.
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrLocationNotFound):
		return domainerrors.ErrLocationNotFound
	case errors.Is(err, repository.ErrEventNotFound):
		return domainerrors.ErrEventNotFound
	case errors.Is(err, repository.ErrMemberProfileNotFound):
		return domainerrors.ErrMemberProfileNotFound
	case errors.Is(err, repository.ErrDuplicateExternalID):
		return domainerrors.ErrConstraintViolation.WithDetails(err.Error())
	case errors.Is(err, repository.ErrDuplicateProfile):
		return domainerrors.ErrConstraintViolation.WithDetails(err.Error())
	default:
		return err
	}
}
