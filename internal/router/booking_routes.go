package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayfinder-booking/internal/handler"
	"github.com/iliyamo/stayfinder-booking/internal/middleware"
)

// RegisterBookings registers the booking endpoints under /v1.  Both routes
// require a valid JWT; any authenticated role may book.  Callers can create
// a booking for a property and list their own bookings.  All operations are
// scoped to the verified caller identity inside the handlers.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("GUEST", "HOST"),
	)
	g.POST("/bookings", h.Create)
	g.GET("/bookings", h.ListMine)
}
