package postgres

import (
	"context"
	"testing"
	"time"

	"society/internal/domain/entity"
	"society/internal/domain/repository"
	"society/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var locationColumns = []string{
	"id", "name", "category", "address", "website", "country_code",
	"related_store_external_id", "latitude", "longitude", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestLocationRepository_FindLocationByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "locations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(locationColumns).
			AddRow(int64(7), "Wat Pho", "TEMPLE", "2 Sanam Chai Rd", "https://watpho.com", "TH", "S-7", 13.7465, 100.4927, now, now))

	location, err := repo.FindLocationByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), location.ID)
	assert.Equal(t, entity.CategoryTemple, location.Category)
	require.NotNil(t, location.Website)
	assert.Equal(t, "https://watpho.com", *location.Website)
	assert.InDelta(t, 13.7465, *location.Lat(), 1e-9)
	assert.InDelta(t, 100.4927, *location.Lng(), 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepository_FindLocationByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "locations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(locationColumns))

	_, err := repo.FindLocationByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepository_CreateLocation_DuplicateExternalID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(db)
	point := entity.NewPoint(13.7, 100.5)

	mock.ExpectQuery(`INSERT INTO "locations"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.CreateLocation(context.Background(), &entity.Location{
		Name:                   "Wat Arun",
		Category:               entity.CategoryTemple,
		CountryCode:            "TH",
		RelatedStoreExternalID: "S-1",
		Coordinates:            &point,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateExternalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepository_DeleteLocation_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(db)

	mock.ExpectExec(`DELETE FROM "locations" WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteLocation(context.Background(), 3)
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_FindEventsWithinRadius(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)
	start := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`ST_DWithin\(locations\.coordinates`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "event_external_id", "title", "description", "banner_image", "event_type",
			"start_date", "end_date", "design_template_external_id", "location_id",
			"created_at", "updated_at", "distance_km",
		}).AddRow(int64(11), "E-11", "Kathina", "", "", "RELIGIOUS", start, nil, "", int64(7), now, now, 1.25))
	mock.ExpectQuery(`SELECT \* FROM "locations" WHERE id IN \(\$1\)`).
		WillReturnRows(sqlmock.NewRows(locationColumns).
			AddRow(int64(7), "Wat Pho", "TEMPLE", "", nil, "TH", "", 13.7465, 100.4927, now, now))

	results, err := repo.FindEventsWithinRadius(context.Background(), repository.RadiusQuery{
		Center:   entity.NewPoint(13.75, 100.5),
		RadiusKm: 5,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(11), results[0].Event.ID)
	assert.InDelta(t, 1.25, results[0].DistanceKm, 1e-9)
	require.NotNil(t, results[0].Event.Location)
	assert.Equal(t, "Wat Pho", results[0].Event.Location.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_FindEventsWithinRadius_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)
	eventType := entity.EventTypeConcert

	mock.ExpectQuery(`AND events\.event_type = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "distance_km"}))

	results, err := repo.FindEventsWithinRadius(context.Background(), repository.RadiusQuery{
		Center:    entity.NewPoint(0, 0),
		RadiusKm:  1,
		EventType: &eventType,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberProfileRepository_FindProfileByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMemberProfileRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "member_profiles" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "home_city", "interests", "created_at", "updated_at"}).
			AddRow(int64(1), int64(42), "Bangkok", "{music,food}", now, now))
	mock.ExpectQuery(`SELECT "event_id" FROM "member_profile_saved_events" WHERE member_profile_id = \$1 ORDER BY event_id`).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(int64(3)).AddRow(int64(5)))

	profile, err := repo.FindProfileByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), profile.UserID)
	assert.Equal(t, []string{"music", "food"}, profile.Interests)
	assert.Equal(t, []int64{3, 5}, profile.SavedEventIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberProfileRepository_RemoveEventFromAllProfiles(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMemberProfileRepository(db)

	require.NoError(t, repo.RemoveEventFromAllProfiles(context.Background()))

	mock.ExpectExec(`DELETE FROM "member_profile_saved_events" WHERE event_id IN \(\$1,\$2\)`).
		WithArgs(int64(4), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.RemoveEventFromAllProfiles(context.Background(), 4, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		assert.NotNil(t, factory.NewLocationRepository())
		assert.NotNil(t, factory.NewEventRepository())
		assert.NotNil(t, factory.NewMemberProfileRepository())

		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "events" WHERE location_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	var deleted int64
	err := tm.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		var err error
		deleted, err = factory.NewEventRepository().DeleteEventsByLocation(context.Background(), 7)

		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%100\% pure%`, containsPattern("100% pure"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
}
