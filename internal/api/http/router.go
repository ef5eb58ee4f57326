package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/supportdesk/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Companies      *handlers.CompaniesHandler
	Tickets        *handlers.TicketsHandler
	Messages       *handlers.MessagesHandler
	Knowledge      *handlers.KnowledgeHandler
	Statuses       *handlers.StatusesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public surface.
	api.Post("/login", cfg.Auth.Login)
	api.Post("/logout", cfg.Auth.Logout)
	api.Get("/statuses", cfg.Statuses.List)
	api.Get("/knowledgebase", cfg.Knowledge.List)
	api.Get("/knowledgebase/categories", cfg.Knowledge.Categories)
	api.Get("/knowledgebase/:id", cfg.Knowledge.Get)

	authed := api.Group("", cfg.AuthMiddleware.Handle)
	authed.Get("/me", cfg.Users.Me)

	// Tickets. The stats route must precede the :id routes.
	authed.Post("/tickets", cfg.Tickets.Create)
	authed.Get("/tickets", cfg.Tickets.List)
	authed.Get("/tickets/stats", cfg.Tickets.Stats)
	authed.Get("/tickets/:id", cfg.Tickets.Get)
	authed.Put("/tickets/:id/assign", auth.RequireAdmin(), cfg.Tickets.Assign)
	authed.Put("/tickets/:id/status", auth.RequireAgentOrAdmin(), cfg.Tickets.UpdateStatus)
	authed.Put("/tickets/:id/priority", auth.RequireAdmin(), cfg.Tickets.UpdatePriority)

	// Ticket threads.
	authed.Post("/tickets/:id/messages", cfg.Messages.Post)
	authed.Get("/tickets/:id/messages", cfg.Messages.List)
	authed.Get("/tickets/:id/messages/:messageID/attachments/:file", cfg.Messages.DownloadAttachment)

	// Administration.
	admin := authed.Group("", auth.RequireAdmin())
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Put("/users/:id", cfg.Users.Update)
	admin.Delete("/users/:id", cfg.Users.Delete)

	admin.Get("/companies", cfg.Companies.List)
	admin.Post("/companies", cfg.Companies.Create)
	admin.Delete("/companies/:id", cfg.Companies.Delete)

	admin.Post("/knowledgebase", cfg.Knowledge.Create)
	admin.Put("/knowledgebase/:id", cfg.Knowledge.Update)
	admin.Delete("/knowledgebase/:id", cfg.Knowledge.Delete)
}
