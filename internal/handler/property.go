// This file defines handlers for the property catalog. Browsing is public so
// guests can inspect a listing before booking; creation is restricted to
// hosts. Sensitive fields (host IDs, timestamps) are filtered from public
// responses.
package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayfinder-booking/internal/model"
	"github.com/iliyamo/stayfinder-booking/internal/repository"
)

// PropertyHandler aggregates the repository needed for catalog endpoints.
type PropertyHandler struct {
	Properties *repository.PropertyRepo
}

func NewPropertyHandler(p *repository.PropertyRepo) *PropertyHandler {
	return &PropertyHandler{Properties: p}
}

// PublicProperty is a listing as exposed via the public API. It contains
// only safe fields.
type PublicProperty struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Image         *string `json:"image,omitempty"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"pricePerNight"`
}

func toPublicProperty(p model.Property) PublicProperty {
	return PublicProperty{
		ID:            p.ID,
		Title:         p.Title,
		Image:         p.Image,
		Location:      p.Location,
		PricePerNight: p.PricePerNight,
	}
}

// List handles GET /v1/properties.  It returns all bookable listings for
// unauthenticated browsing.  Response JSON contains an "items" array of
// PublicProperty.
func (h *PropertyHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	props, err := h.Properties.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicProperty, 0, len(props))
	for _, p := range props {
		out = append(out, toPublicProperty(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get handles GET /v1/properties/:id.  It returns a single listing or 404.
func (h *PropertyHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	ctx := c.Request().Context()
	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toPublicProperty(p)})
}

var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,63}$`)

type createPropertyReq struct {
	ID            string  `json:"id"` // stable slug, e.g. "sea-view-loft"
	Title         string  `json:"title"`
	Image         *string `json:"image"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"pricePerNight"`
}

// Create handles POST /v1/properties.  Restricted to the HOST role by
// middleware; the listing is owned by the authenticated caller.
func (h *PropertyHandler) Create(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.ID = strings.TrimSpace(strings.ToLower(req.ID))
	req.Title = strings.TrimSpace(req.Title)
	if !slugRe.MatchString(req.ID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a lowercase slug"})
	}
	if req.Title == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and location required"})
	}
	if req.PricePerNight < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pricePerNight must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.Property{
		ID:            req.ID,
		HostID:        hostID,
		Title:         req.Title,
		Image:         req.Image,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
	}
	if err := h.Properties.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrPropertyExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "property id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toPublicProperty(p)})
}
