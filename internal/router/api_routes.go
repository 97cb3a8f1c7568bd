package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
	"github.com/Hostizzy/hostizzy-pms/internal/handler"
	"github.com/Hostizzy/hostizzy-pms/internal/middleware"
)

// APIHandlers bundles everything RegisterAPI mounts under /v1.
type APIHandlers struct {
	Auth          *handler.AuthHandler
	Owners        *handler.OwnerHandler
	Properties    *handler.PropertyHandler
	Reservations  *handler.ReservationHandler
	Availability  *handler.AvailabilityHandler
	Dashboard     *handler.DashboardHandler
	Guests        *handler.GuestHandler
	Menus         *handler.MenuHandler
}

// RegisterAPI registers the staff endpoints.  Every route requires a
// valid JWT and a staff role; property mutations are admin-only, and
// calendar or reservation mutations are open to admins and managers.
// Owners get read access to their own portfolio.  The rate limiter runs
// on the whole group; cacheMW wraps only the analytics summary.
func RegisterAPI(e *echo.Echo, h APIHandlers, jwtSecret string, rateMW, cacheMW echo.MiddlewareFunc) {
	staffRoles := []string{string(access.RoleAdmin), string(access.RoleOwner), string(access.RoleManager)}

	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	if rateMW != nil {
		g.Use(rateMW)
	}
	g.Use(middleware.RequireRole(staffRoles...))

	admin := middleware.RequireRole(string(access.RoleAdmin))
	manage := middleware.RequireRole(string(access.RoleAdmin), string(access.RoleManager))

	// Dashboard and analytics
	g.GET("/dashboard", h.Dashboard.Dashboard)
	if cacheMW != nil {
		g.GET("/analytics/summary", h.Dashboard.Summary, cacheMW)
	} else {
		g.GET("/analytics/summary", h.Dashboard.Summary)
	}

	// Accounts and owners (admin only)
	g.PATCH("/profiles/:id/role", h.Auth.UpdateRole, admin)
	g.POST("/owners", h.Owners.Create, admin)
	g.GET("/owners", h.Owners.List, admin)
	g.GET("/owners/:id", h.Owners.Get, admin)

	// Properties
	g.GET("/properties", h.Properties.List)
	g.GET("/properties/:id", h.Properties.Get)
	g.POST("/properties", h.Properties.Create, admin)
	g.PUT("/properties/:id", h.Properties.Update, admin)
	g.DELETE("/properties/:id", h.Properties.Deactivate, admin)
	g.POST("/properties/:id/assign", h.Properties.Assign, admin)

	// Availability and blocks
	g.GET("/properties/:id/availability", h.Availability.Check)
	g.GET("/properties/:id/blocks", h.Availability.ListBlocks)
	g.POST("/properties/:id/blocks", h.Availability.CreateBlock, manage)
	g.DELETE("/blocks/:id", h.Availability.DeleteBlock, manage)

	// Reservations
	g.GET("/reservations", h.Reservations.List)
	g.GET("/reservations/:id", h.Reservations.Get)
	g.POST("/reservations", h.Reservations.Create, manage)
	g.PATCH("/reservations/:id/status", h.Reservations.UpdateStatus, manage)

	// Guests and KYC documents
	g.GET("/reservations/:id/guests", h.Guests.ListForReservation)
	g.POST("/reservations/:id/guests", h.Guests.Link, manage)
	g.POST("/guests", h.Guests.Create, manage)
	g.GET("/guests/:id", h.Guests.Get)
	g.GET("/guest-ids/:id/url", h.Guests.DocumentURL, manage)

	// Menus
	g.GET("/properties/:id/menus", h.Menus.List)
	g.POST("/properties/:id/menus", h.Menus.Create, manage)
	g.PUT("/menus/:id", h.Menus.Update, manage)
	g.DELETE("/menus/:id", h.Menus.Delete, manage)
}
