package config

import (
	"context"
	"go-marketplace/storage"
)

// OpenStorage builds the backend named by cfg.StorageDriver. The returned
// close func releases its connections.
func OpenStorage(ctx context.Context, cfg *Config) (storage.KeyValueStorage, func(), error) {
	switch cfg.StorageDriver {
	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		kv := storage.NewRedisStorage(client)
		return kv, func() { _ = kv.Close() }, nil
	case DriverPostgres:
		pool, err := ConnectDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPostgresStorage(pool), pool.Close, nil
	default:
		kv := storage.NewMemoryStorage()
		return kv, func() { _ = kv.Close() }, nil
	}
}
