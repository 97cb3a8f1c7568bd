// Package handler contains the HTTP handlers for the property management
// API.  Handlers bind and validate requests, resolve the caller's
// property scope, and delegate to the repositories.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
	"github.com/Hostizzy/hostizzy-pms/internal/middleware"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
)

const dbTimeout = 5 * time.Second

// reqCtx bounds repository calls made on behalf of a request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// actorPtr returns the authenticated user ID as a nullable pointer for
// created_by columns.
func actorPtr(c echo.Context) *uint64 {
	if uid := middleware.UserID(c); uid != 0 {
		return &uid
	}
	return nil
}

// resolveScope turns the authenticated caller into a property scope.
// Admins see everything, owners and managers see their assigned
// properties, anyone else sees nothing.
func resolveScope(ctx context.Context, c echo.Context, props *repository.PropertyRepo) (access.Scope, error) {
	role := access.ParseRole(middleware.Role(c))
	return access.Resolve(ctx, role, middleware.UserID(c), props)
}
