package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/photoshare-service/internal/api/http/handlers"
	"github.com/spec-kit/photoshare-service/internal/auth"
	"github.com/spec-kit/photoshare-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Photos         *handlers.PhotosHandler
	Tags           *handlers.TagsHandler
	Comments       *handlers.CommentsHandler
	Transformer    *handlers.TransformerHandler
	Media          *handlers.MediaHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
	MetricsPath    string
}

// RegisterRoutes wires HTTP routes. Role checks happen inside each handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		app.Get(cfg.MetricsPath, adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	if cfg.Media != nil {
		app.Get("/media/*", cfg.Media.Serve)
	}

	api := app.Group("/api")
	authenticate := cfg.AuthMiddleware.Authenticate

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/refresh_token", cfg.Auth.Refresh)
	authGroup.Post("/logout", authenticate, cfg.Auth.Logout)

	users := api.Group("/users", authenticate)
	users.Get("/me", cfg.Users.Me)
	users.Patch("/me", cfg.Users.UpdateMe)
	users.Get("/", cfg.Users.List)
	users.Get("/by-username/:username", cfg.Users.Profile)
	users.Patch("/ban", cfg.Users.Ban)
	users.Patch("/role", cfg.Users.ChangeRole)

	photos := api.Group("/photos", authenticate)
	photos.Post("/", cfg.Photos.Create)
	photos.Get("/", cfg.Photos.List)
	photos.Get("/search", cfg.Photos.Search)
	photos.Get("/:id", cfg.Photos.Get)
	photos.Put("/:id", cfg.Photos.Update)
	photos.Patch("/:id/title", cfg.Photos.UpdateTitle)
	photos.Patch("/:id/description", cfg.Photos.UpdateDescription)
	photos.Delete("/:id", cfg.Photos.Delete)

	tags := api.Group("/tags", authenticate)
	tags.Post("/", cfg.Tags.Create)
	tags.Put("/:id", cfg.Tags.Rename)

	comments := api.Group("/comments", authenticate)
	comments.Get("/photo/:photo_id", cfg.Comments.List)
	comments.Post("/photo/:photo_id", cfg.Comments.Create)
	comments.Put("/:id", cfg.Comments.Update)
	comments.Delete("/:id", cfg.Comments.Delete)

	transformer := api.Group("/transformer", authenticate)
	transformer.Post("/qr_code/:photo_id", cfg.Transformer.QRCode)
	transformer.Patch("/:photo_id", cfg.Transformer.Transform)
}
