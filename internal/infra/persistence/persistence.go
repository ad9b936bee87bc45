// Package persistence selects the data store backend for the binaries.
package persistence

import (
	"society/internal/domain/constants"
	"society/internal/domain/repository"
	"society/internal/infra/persistence/memory"
	"society/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Module provides the TransactionManager and repositories for driver.
func Module(driver string) (fx.Option, error) {
	switch driver {
	case constants.StorageDriverPostgres, "":
		return fx.Provide(
			postgres.New,
			postgres.NewTransactionManager,
			postgres.NewLocationRepository,
			postgres.NewEventRepository,
			postgres.NewMemberProfileRepository,
		), nil

	case constants.StorageDriverMemory:
		return fx.Provide(
			memory.NewStore,
			func(store *memory.Store) repository.TransactionManager { return store },
			func(store *memory.Store) repository.LocationRepository { return store.Locations() },
			func(store *memory.Store) repository.EventRepository { return store.Events() },
			func(store *memory.Store) repository.MemberProfileRepository { return store.MemberProfiles() },
		), nil

	default:
		return nil, errors.Errorf("unknown storage driver: %s", driver)
	}
}
