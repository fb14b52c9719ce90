package cmd

import (
	"context"
	"fmt"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/adapters/out/postgres/userrepo"
	"fulfillment/internal/core/ports"
)

// Storage is one storage driver's set of adapters.
type Storage struct {
	UoWFactory ports.UnitOfWorkFactory
	Orders     ports.OrderReader
	Users      ports.UserRepository
	Stock      ports.StockRepository
	Close      func() error
}

// NewMemoryStorage returns a fresh in-process driver. Nothing survives a restart.
func NewMemoryStorage() Storage {
	store := memory.NewStore()
	return Storage{
		UoWFactory: memory.NewUnitOfWorkFactory(store),
		Orders:     store,
		Users:      store.Users(),
		Stock:      store.Stock(),
		Close:      func() error { return nil },
	}
}

// NewPostgresStorage connects to dsn and migrates the schema.
func NewPostgresStorage(dsn string) (Storage, error) {
	db, err := postgres.Open(dsn)
	if err != nil {
		return Storage{}, err
	}
	if err := postgres.Migrate(db); err != nil {
		return Storage{}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Storage{}, fmt.Errorf("get sql db: %w", err)
	}

	return Storage{
		UoWFactory: postgres.NewGormUnitOfWorkFactory(db),
		Orders:     orderrepo.NewGormOrderReader(db),
		Users:      userrepo.NewGormUserRepository(db),
		Stock:      stockrepo.NewGormStockRepository(db),
		Close:      sqlDB.Close,
	}, nil
}

// OpenStorage picks the driver named in cfg.
func OpenStorage(_ context.Context, cfg Config) (Storage, error) {
	switch cfg.StorageDriver {
	case StorageMemory:
		return NewMemoryStorage(), nil
	case StoragePostgres:
		return NewPostgresStorage(cfg.DSN())
	default:
		return Storage{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
