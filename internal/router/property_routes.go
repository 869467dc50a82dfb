package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayfinder-booking/internal/handler"
	"github.com/iliyamo/stayfinder-booking/internal/middleware"
)

// RegisterProperties registers the property catalog.  Browsing is public so
// guests can preview listings before registering; responses pass through the
// provided cache middleware (a no-op when Redis is unavailable).  Listing
// creation requires a JWT with the HOST role.
func RegisterProperties(e *echo.Echo, h *handler.PropertyHandler, cache echo.MiddlewareFunc, jwtSecret string) {
	e.GET("/v1/properties", h.List, cache)
	e.GET("/v1/properties/:id", h.Get, cache)

	host := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("HOST"),
	)
	host.POST("/properties", h.Create)
}
