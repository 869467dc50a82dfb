package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayfinder-booking/internal/service"
)

// BookingHandler binds the booking service to the HTTP surface.  It assumes
// JWT authentication has already run; the verified caller identity is
// extracted once per request and passed explicitly into the service.  The
// handler is the sole translator from service error kinds to wire status
// codes, and never leaks internal detail on storage failures.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.  The service must be non-nil.
func NewBookingHandler(b *service.BookingService) *BookingHandler {
	if b == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: b}
}

// createBookingReq mirrors the JSON body of POST /v1/bookings.  TotalPrice is
// a pointer so a missing field is distinguishable from an explicit zero.
// The owner is never read from the body.
type createBookingReq struct {
	ResourceID    string   `json:"resourceId"`
	ResourceTitle *string  `json:"resourceTitle"`
	ResourceImage *string  `json:"resourceImage"`
	CheckIn       string   `json:"checkIn"`
	CheckOut      string   `json:"checkOut"`
	TotalPrice    *float64 `json:"totalPrice"`
}

// Create handles POST /v1/bookings.  On success it returns 200 with the
// created booking.  Validation failures return 400 listing what was wrong;
// storage failures return 500 with a generic message.
func (h *BookingHandler) Create(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	b, err := h.Bookings.CreateBooking(c.Request().Context(), ownerID, service.CreateBookingInput{
		ResourceID:    req.ResourceID,
		ResourceTitle: req.ResourceTitle,
		ResourceImage: req.ResourceImage,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		TotalPrice:    req.TotalPrice,
	})
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			resp := echo.Map{"error": ve.Error()}
			if len(ve.Missing) > 0 {
				resp["missing"] = ve.Missing
			}
			return c.JSON(http.StatusBadRequest, resp)
		}
		if errors.Is(err, service.ErrStorage) {
			c.Logger().Errorf("create booking: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		c.Logger().Errorf("create booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// ListMine handles GET /v1/bookings.  It returns every booking created by
// the caller, most recent first; an owner with no bookings gets an empty
// array, never an error.
func (h *BookingHandler) ListMine(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Bookings.ListMyBookings(c.Request().Context(), ownerID)
	if err != nil {
		c.Logger().Errorf("list bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}
