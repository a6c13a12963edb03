package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/kv"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
)

// openStore builds the durable store for the configured backend. The returned
// close func is safe to call more than once.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		logg.Warn(ctx, "memory storage selected, state will not survive restarts")
		return kv.NewMemory(), func() {}, nil

	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, err
		}
		return client, sync.OnceFunc(func() {
			if err := client.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}), nil

	case config.StorageBackendSQLite, config.StorageBackendPostgres:
		client, err := db.New(ctx, cfg.Storage, cfg.DB, logg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := sync.OnceFunc(func() {
			if err := client.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		})
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			closeFn()
			return nil, nil, err
		}
		return db.NewKVStore(client), closeFn, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}
