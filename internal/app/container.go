package app

import (
	"context"
	"log"
	"os"
	"time"

	"medhasmind/internal/config"
	"medhasmind/internal/database"
	dbpostgres "medhasmind/internal/database/postgres"
	"medhasmind/internal/infrastructure/cache"
	"medhasmind/internal/infrastructure/identity"
)

// Container holds every shared client, constructed once at process start
// and passed by reference to the components that need it.
type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Redis    *cache.Redis
	Identity identity.Provider
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	var provider identity.Provider
	if cfg.Identity.Mode == config.IdentityModeLocal {
		provider = identity.NewLocalProvider(db, logger)
	} else {
		provider = identity.NewHTTPProvider(cfg.Identity, logger)
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    redis,
		Identity: provider,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
