package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/logger"
	pkgredis "github.com/angelmondragon/storefront/pkg/redis"
)

// Open builds the store selected by cfg.Session.Store. The returned close
// func releases any connection the store opened and is never nil.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Session.Store) {
	case config.SessionStoreMemory:
		return NewMemoryStore(), noop, nil

	case config.SessionStoreFile, "":
		store, err := NewFileStore(cfg.Session.FilePath)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.SessionStoreSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("open session database: %w", err)
		}
		// The client database only ever holds session_values, so it is not
		// moved through the backend's goose migrations.
		if err := client.DB().WithContext(ctx).AutoMigrate(&models.SessionValue{}); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("prepare session_values: %w", err)
		}
		return NewSQLStore(client.DB()), client.Close, nil

	case config.SessionStoreRedis:
		client, err := pkgredis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("open session redis: %w", err)
		}
		return NewRedisStore(client), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}
