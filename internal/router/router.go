// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayfinder-booking/internal/handler"
	"github.com/iliyamo/stayfinder-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check, used by
// load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.  The jwtSecret is used to verify
// access tokens on the protected group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: each of these
	// handlers generates or exchanges tokens itself.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the presented refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body containing a `refresh_token` and
	// invalidates it.  No JWT required; possession of the refresh token is
	// the credential being revoked.
	g.POST("/logout", a.Logout)

	// Protected endpoints require a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("GUEST", "HOST"))
	auth.GET("/me", a.Me)
}
