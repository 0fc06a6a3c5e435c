package app

import (
	"fmt"
	"strings"

	"medhasmind/internal/config"
	"medhasmind/internal/delivery/http/handler"
	"medhasmind/internal/delivery/http/middleware"
	"medhasmind/internal/delivery/http/routes"
	"medhasmind/internal/infrastructure/cache"
	"medhasmind/internal/infrastructure/persistence/postgres"
	"medhasmind/internal/pkg/token"
	ucauth "medhasmind/internal/usecase/auth"
	ucprofiles "medhasmind/internal/usecase/profiles"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(accessMw.Middleware())

	tokenSvc := token.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	revocation := cache.NewRevocationStore(c.Redis)

	profileRepo := postgres.NewProfileRepository(c.DB)
	statsRepo := postgres.NewStatsRepository(c.DB)

	authUC := ucauth.NewService(c.Identity, profileRepo, tokenSvc, revocation, c.Logger)
	profileUC := ucprofiles.NewService(profileRepo, statsRepo, c.Logger)

	authMw := middleware.NewAuthMiddleware(tokenSvc, revocation, c.Logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewAuthHandler(authUC, c.Logger),
		handler.NewUserHandler(profileUC, c.Logger),
		authMw,
	)
	registry.Register(f)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
