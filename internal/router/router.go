// Package router maps the HTTP surface onto the handlers and applies
// the JWT and role middleware per route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/handler"
	"github.com/Hostizzy/hostizzy-pms/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication: the
// health check and the public guest KYC flow, which is reached by
// reservation code alone.
func RegisterRoutes(e *echo.Echo, g *handler.GuestHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/guest/kyc/:code", g.KYCLookup)
	e.POST("/guest/kyc/:code", g.KYCUpload)
}

// RegisterAuth registers the token endpoints under /v1/auth and the
// authenticated /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Logout without a body token revokes every session of the caller,
	// which needs the JWT to identify them.
	auth.POST("/auth/logout-all", a.Logout)
}
