package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/devconnect-service/internal/api/http/handlers"
	"github.com/spec-kit/devconnect-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Profiles       *handlers.ProfilesHandler
	Posts          *handlers.PostsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/users", cfg.Users.Register)
	api.Post("/auth", cfg.Users.Login)
	api.Get("/auth", cfg.AuthMiddleware.Handle, cfg.Users.CurrentUser)
	api.Post("/auth/password/reset/request", cfg.Users.RequestPasswordReset)
	api.Post("/auth/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	profile := api.Group("/profile")
	profile.Get("/me", cfg.AuthMiddleware.Handle, cfg.Profiles.GetMine)
	profile.Post("/", cfg.AuthMiddleware.Handle, cfg.Profiles.Upsert)
	profile.Get("/", cfg.Profiles.ListAll)
	profile.Get("/user/:user_id", cfg.Profiles.GetByUser)
	profile.Delete("/", cfg.AuthMiddleware.Handle, cfg.Profiles.DeleteAccount)
	profile.Put("/experience", cfg.AuthMiddleware.Handle, cfg.Profiles.AddExperience)
	profile.Delete("/experience/:id", cfg.AuthMiddleware.Handle, cfg.Profiles.RemoveExperience)
	profile.Put("/education", cfg.AuthMiddleware.Handle, cfg.Profiles.AddEducation)
	profile.Delete("/education/:id", cfg.AuthMiddleware.Handle, cfg.Profiles.RemoveEducation)
	profile.Get("/github/:username", cfg.Profiles.GithubRepos)

	posts := api.Group("/posts", cfg.AuthMiddleware.Handle)
	posts.Post("/", cfg.Posts.Create)
	posts.Get("/", cfg.Posts.ListAll)
	posts.Get("/:id", cfg.Posts.GetByID)
	posts.Delete("/:id", cfg.Posts.Delete)
	posts.Put("/like/:id", cfg.Posts.Like)
	posts.Put("/unlike/:id", cfg.Posts.Unlike)
	posts.Post("/comment/:id", cfg.Posts.AddComment)
	posts.Delete("/comment/:id/:comment_id", cfg.Posts.DeleteComment)
}
