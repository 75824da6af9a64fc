package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/control-inventario/internal/domain/repository"
	"github.com/jhoicas/control-inventario/internal/infrastructure/filestore"
	"github.com/jhoicas/control-inventario/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/control-inventario/internal/infrastructure/redis"
	"github.com/jhoicas/control-inventario/internal/infrastructure/sqlite"
	"github.com/jhoicas/control-inventario/pkg/config"
)

// Open construye el backend clave-valor según STORAGE_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return filestore.NewInMemory(), nil
	case config.DriverFile:
		return filestore.NewOnDisk(cfg.Storage.Dir)
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.Storage.SQLitePath)
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		store, err := postgres.OpenKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case config.DriverRedis:
		return infraredis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
}
