package postgres

import (
	"context"
	"strings"

	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/repository"
	"society/internal/errors"
	"society/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// locationRepository implements the repository.LocationRepository interface.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{
		db: db,
	}
}

// CreateLocation persists a new location.
func (repo *locationRepository) CreateLocation(ctx context.Context, location *entity.Location) error {
	locationM := fromLocationDomain(location)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(locationM).Error; err != nil {
		return translateLocationWriteError(err, "failed to create location")
	}

	location.ID = locationM.ID
	location.CreatedAt = locationM.CreatedAt
	location.UpdatedAt = locationM.UpdatedAt

	return nil
}

// UpdateLocation overwrites every mutable column of the location.
func (repo *locationRepository) UpdateLocation(ctx context.Context, location *entity.Location) error {
	locationM := fromLocationDomain(location)

	result := repo.db.WithContext(ctx).
		Model(&model.LocationModel{ID: location.ID}).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(locationM)
	if result.Error != nil {
		return translateLocationWriteError(result.Error, "failed to update location")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLocationNotFound
	}

	location.UpdatedAt = locationM.UpdatedAt

	return nil
}

// FindLocationByID retrieves a location by its ID.
func (repo *locationRepository) FindLocationByID(ctx context.Context, id int64) (*entity.Location, error) {
	var locationM model.LocationModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&locationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLocationNotFound
		}

		return nil, errors.Wrap(err, "failed to find location by ID")
	}

	return toLocationDomain(&locationM), nil
}

// FindLocationByExternalID reads from the primary and locks the row so an
// import upsert sees the latest committed state.
func (repo *locationRepository) FindLocationByExternalID(ctx context.Context, externalID string) (*entity.Location, error) {
	var locationM model.LocationModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("related_store_external_id = ?", externalID).
		First(&locationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLocationNotFound
		}

		return nil, errors.Wrap(err, "failed to find location by external ID")
	}

	return toLocationDomain(&locationM), nil
}

// FindLocationByNameAndCountry resolves the fallback natural key of a location.
func (repo *locationRepository) FindLocationByNameAndCountry(ctx context.Context, name, countryCode string) (*entity.Location, error) {
	var locationM model.LocationModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("name = ? AND country_code = ?", name, strings.ToUpper(countryCode)).
		Order("id").
		First(&locationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLocationNotFound
		}

		return nil, errors.Wrap(err, "failed to find location by name and country")
	}

	return toLocationDomain(&locationM), nil
}

// FindLocationsByName matches the name case-insensitively.
func (repo *locationRepository) FindLocationsByName(ctx context.Context, name string, exact bool) ([]*entity.Location, error) {
	var locationModels []*model.LocationModel

	query := repo.db.WithContext(ctx).Clauses(dbresolver.Write)
	if exact {
		query = query.Where("LOWER(name) = LOWER(?)", name)
	} else {
		query = query.Where("name ILIKE ?", containsPattern(name))
	}

	if err := query.Find(&locationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find locations by name")
	}

	return toLocationDomains(locationModels), nil
}

// ListLocations retrieves every location matching the filter.
func (repo *locationRepository) ListLocations(ctx context.Context, filter repository.LocationFilter) ([]*entity.Location, error) {
	var locationModels []*model.LocationModel

	query := repo.db.WithContext(ctx)
	if filter.CountryCode != "" {
		query = query.Where("UPPER(country_code) = ?", strings.ToUpper(filter.CountryCode))
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.NameContains != "" {
		query = query.Where("name ILIKE ?", containsPattern(filter.NameContains))
	}

	if err := query.Find(&locationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}

	return toLocationDomains(locationModels), nil
}

// DeleteLocation removes a location row.
func (repo *locationRepository) DeleteLocation(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.LocationModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete location")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLocationNotFound
	}

	return nil
}

func translateLocationWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return repository.ErrDuplicateExternalID
	}
	if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
		return domainerrors.Validation(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// containsPattern builds an ILIKE pattern that treats the input literally.
func containsPattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return "%" + replacer.Replace(s) + "%"
}

func fromLocationDomain(location *entity.Location) *model.LocationModel {
	locationM := &model.LocationModel{
		ID:                     location.ID,
		Name:                   location.Name,
		Category:               string(location.Category),
		Address:                location.Address,
		Website:                location.Website,
		CountryCode:            location.CountryCode,
		RelatedStoreExternalID: location.RelatedStoreExternalID,
		CreatedAt:              location.CreatedAt,
		UpdatedAt:              location.UpdatedAt,
	}
	if location.Coordinates != nil {
		locationM.Latitude = location.Coordinates.Lat()
		locationM.Longitude = location.Coordinates.Lon()
	}

	return locationM
}

func toLocationDomain(locationM *model.LocationModel) *entity.Location {
	point := entity.NewPoint(locationM.Latitude, locationM.Longitude)

	return &entity.Location{
		ID:                     locationM.ID,
		Name:                   locationM.Name,
		Category:               entity.LocationCategory(locationM.Category),
		Address:                locationM.Address,
		Website:                locationM.Website,
		CountryCode:            locationM.CountryCode,
		RelatedStoreExternalID: locationM.RelatedStoreExternalID,
		Coordinates:            &point,
		CreatedAt:              locationM.CreatedAt,
		UpdatedAt:              locationM.UpdatedAt,
	}
}

func toLocationDomains(locationModels []*model.LocationModel) []*entity.Location {
	locations := make([]*entity.Location, 0, len(locationModels))
	for _, locationM := range locationModels {
		locations = append(locations, toLocationDomain(locationM))
	}

	return locations
}
