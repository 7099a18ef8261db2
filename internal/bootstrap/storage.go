package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/adapters/memstore"
	"github.com/learnsphere/learnsphere-ui/internal/adapters/postgres"
	redisstore "github.com/learnsphere/learnsphere-ui/internal/adapters/redis"
	"github.com/learnsphere/learnsphere-ui/internal/adapters/sealed"
	"github.com/learnsphere/learnsphere-ui/internal/cryptoutil"
	"github.com/learnsphere/learnsphere-ui/internal/migrate"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

// Infrastructure is the storage side of a running server.
type Infrastructure struct {
	Storage ports.StorageProvider
	// Purger is set for backends that need an external expiry sweep.
	Purger Purger

	closers []func() error
}

// Close releases every connection opened by BuildStorage.
func (i *Infrastructure) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	for n := len(i.closers) - 1; n >= 0; n-- {
		if err := i.closers[n](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BuildStorage connects the configured client storage backend, applies
// migrations when asked to and seals values when a key is configured.
func BuildStorage(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Infrastructure, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	infra := &Infrastructure{}
	dbCfg := DatabaseConfig{DBConfig: cfg.Postgres, RedisConfig: cfg.Redis, Logger: logger}

	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		client, err := ConnectRedis(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		infra.closers = append(infra.closers, client.Close)
		infra.Storage = redisstore.NewStorageProviderWithOptions(client, cfg.Storage.KeyPrefix, cfg.Storage.TTL)

	case config.StorageBackendPostgres:
		db, err := ConnectDB(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		infra.closers = append(infra.closers, db.Close)
		if cfg.Postgres.RunMigrationsOnStart {
			applied, err := migrate.Run(ctx, db, logger)
			if err != nil {
				return nil, errors.Join(fmt.Errorf("run migrations: %w", err), infra.Close())
			}
			logger.InfoContext(ctx, "database migrations completed", "applied", applied)
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
		pg := postgres.NewStorageProvider(db, cfg.Storage.TTL)
		infra.Storage = pg
		infra.Purger = pg

	default:
		infra.Storage = memstore.NewProvider()
	}

	sealedStorage, err := sealStorage(infra.Storage, cfg.Storage.EncryptionKey, logger)
	if err != nil {
		return nil, errors.Join(err, infra.Close())
	}
	infra.Storage = sealedStorage

	logger.InfoContext(ctx, "client storage ready",
		"backend", string(cfg.Storage.Backend),
		"encrypted", cfg.Storage.EncryptionKey != "",
		"ttl", cfg.Storage.TTL)
	return infra, nil
}

// sealStorage wraps p in AES-GCM encryption when key is set. A key that is
// set but unusable is an error, never a silent fallback to plaintext.
//
//nolint:ireturn // the provider is either p itself or its sealed wrapper.
func sealStorage(p ports.StorageProvider, key string, logger *slog.Logger) (ports.StorageProvider, error) {
	if key == "" {
		return p, nil
	}
	raw, err := cryptoutil.ParseKey(key)
	if err != nil {
		return nil, fmt.Errorf("storage encryption key: %w", err)
	}
	enc, err := cryptoutil.NewAESGCMEncryptor(raw)
	if err != nil {
		return nil, fmt.Errorf("storage encryptor: %w", err)
	}
	return sealed.NewProvider(p, enc, logger), nil
}
