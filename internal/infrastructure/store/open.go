package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/config"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
	"github.com/bratat/go-user-accounts/internal/infrastructure/cache"
	"github.com/bratat/go-user-accounts/internal/infrastructure/memory"
	mongoinfra "github.com/bratat/go-user-accounts/internal/infrastructure/mongo"
	pginfra "github.com/bratat/go-user-accounts/internal/infrastructure/postgres"
	"github.com/bratat/go-user-accounts/pkg/helpers"
)

// Open builds the user store selected by STORE_DRIVER, optionally wrapped
// in the Redis read-through cache. The returned func releases every
// connection that was opened.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.UserRepository, func(), error) {
	var (
		repo    repository.UserRepository
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.StoreDriver {
	case "postgres":
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		repo = pginfra.NewUserRepository(pool)
	case "mongo":
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		r := mongoinfra.NewUserRepository(client.Database(cfg.MongoDB))
		if err := r.EnsureIndexes(ctx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		repo = r
	case "memory":
		logger.Warn("using in-memory user store; data is lost on restart")
		repo = memory.NewUserRepository()
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		closers = append(closers, func() { _ = rdb.Close() })
		repo = cache.NewUserRepository(repo, rdb, cfg.UserCacheTTL, logger)
		logger.WithField("addr", cfg.RedisAddr).Info("user cache enabled")
	}

	logger.WithField("driver", cfg.StoreDriver).Info("user store ready")
	return repo, closeAll, nil
}
