package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/api/http/handlers"
	"github.com/gholaman/municipal-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Requests      *handlers.RequestsHandler
	StaffRequests *handlers.StaffRequestsHandler
	News          *handlers.NewsHandler
	AdminNews     *handlers.AdminNewsHandler

	SessionMiddleware *auth.Middleware
	Resolver          *auth.Resolver
	LoginPath         string
	DashboardPath     string
}

// RegisterRoutes wires HTTP routes. The session middleware runs on every
// route so public pages can also see who is asking; the page guards on
// the staff and admin groups redirect browsers, and the services behind
// them perform the authoritative checks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.SessionMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login", cfg.Auth.Login)
	authGroup.Post("/staff/logout", cfg.Auth.Logout)

	app.Post("/requests", cfg.Requests.Submit)
	app.Get("/requests/:code", cfg.Requests.Track)

	app.Get("/news", cfg.News.List)
	app.Get("/news/:slug", cfg.News.GetBySlug)

	staff := app.Group("/staff", auth.RequireEmployeePage(cfg.Resolver, cfg.LoginPath))
	staff.Get("/requests", cfg.StaffRequests.List)
	staff.Get("/requests/stats", cfg.StaffRequests.Stats)
	staff.Patch("/requests/:code/status", cfg.StaffRequests.UpdateStatus)

	admin := app.Group("/admin", auth.RequireAdminPage(cfg.Resolver, cfg.LoginPath, cfg.DashboardPath))
	admin.Get("/news", cfg.AdminNews.List)
	admin.Get("/news/:id", cfg.AdminNews.Get)
	admin.Post("/news", cfg.AdminNews.Create)
	admin.Put("/news/:id", cfg.AdminNews.Update)
	admin.Delete("/news/:id", cfg.AdminNews.Delete)
}
