package routes

import (
	"medhasmind/internal/delivery/http/handler"
	"medhasmind/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	auth   *handler.AuthHandler
	users  *handler.UserHandler
	authMw *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, auth *handler.AuthHandler, users *handler.UserHandler, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, auth: auth, users: users, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	authGroup := v1.Group("/auth")
	authProtected := authGroup.Group("", r.authMw.Middleware())
	r.auth.RegisterRoutes(authGroup, authProtected)

	usersGroup := v1.Group("/users", r.authMw.Middleware())
	r.users.RegisterRoutes(usersGroup)
}
