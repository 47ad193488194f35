package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doorknock-service/internal/api/http/handlers"
	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Actors         *handlers.ActorsHandler
	Leads          *handlers.LeadsHandler
	OrgUnits       *handlers.OrgUnitsHandler
	Territories    *handlers.TerritoriesHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/passcode/request", cfg.Auth.RequestPasscode)
	authGroup.Post("/passcode/verify", cfg.Auth.VerifyPasscode)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())

	leads := protected.Group("/leads")
	leads.Post("", cfg.Leads.CreateLead)
	leads.Get("", cfg.Leads.ListLeads)
	leads.Get("/:id", cfg.Leads.GetLead)
	leads.Patch("/:id", cfg.Leads.UpdateLead)
	leads.Delete("/:id", cfg.Leads.DeleteLead)
	leads.Post("/:id/visit", cfg.Leads.LogVisit)
	leads.Post("/:id/reassign", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.Leads.ReassignLead)

	actors := protected.Group("/actors")
	actors.Post("", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.Actors.CreateActor)
	actors.Get("", cfg.Actors.ListActors)
	actors.Get("/:id", cfg.Actors.GetActor)
	actors.Patch("/:id", cfg.Actors.UpdateActor)
	actors.Delete("/:id", auth.RequireRole(domain.RoleOwner), cfg.Actors.DeleteActor)

	orgUnits := protected.Group("/org-units")
	orgUnits.Post("", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.OrgUnits.CreateUnit)
	orgUnits.Get("", cfg.OrgUnits.ListUnits)
	orgUnits.Get("/:id", cfg.OrgUnits.GetUnit)
	orgUnits.Patch("/:id", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.OrgUnits.UpdateUnit)
	orgUnits.Delete("/:id", auth.RequireRole(domain.RoleOwner), cfg.OrgUnits.DeleteUnit)

	territories := protected.Group("/territories")
	territories.Post("", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.Territories.CreateTerritory)
	territories.Get("", cfg.Territories.ListTerritories)
	territories.Post("/assign", cfg.Territories.AssignPoint)
	territories.Get("/:id", cfg.Territories.GetTerritory)
	territories.Patch("/:id", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.Territories.UpdateTerritory)
	territories.Delete("/:id", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.Territories.DeleteTerritory)

	protected.Get("/stats", cfg.Stats.GetStats)
}
