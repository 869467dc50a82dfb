package handler_test

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stayfinder-booking/internal/handler"
	"github.com/iliyamo/stayfinder-booking/internal/repository"
	"github.com/iliyamo/stayfinder-booking/internal/router"
	"github.com/iliyamo/stayfinder-booking/internal/utils"
)

func newPropertyServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	e := echo.New()
	router.RegisterProperties(e, handler.NewPropertyHandler(repository.NewPropertyRepo(db)), passthrough, testSecret)
	return e, mock
}

func hostBearer(t *testing.T, userID uint64) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, "HOST", 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

var propertyCols = []string{
	"id", "host_id", "title", "image", "location",
	"price_per_night", "is_active", "created_at", "updated_at",
}

func propertyRow(id string, hostID uint64, title, location string, price float64) []driver.Value {
	now := time.Now().UTC()
	return []driver.Value{id, hostID, title, nil, location, price, true, now, now}
}

func TestListPropertiesPublic(t *testing.T) {
	e, mock := newPropertyServer(t)

	rows := sqlmock.NewRows(propertyCols).
		AddRow(propertyRow("sea-view-loft", 9, "Sea View Loft", "Lisbon", 120)...).
		AddRow(propertyRow("forest-cabin", 9, "Forest Cabin", "Sintra", 85)...)
	mock.ExpectQuery("FROM properties WHERE is_active = 1").WillReturnRows(rows)

	rec := doJSON(e, http.MethodGet, "/v1/properties", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []handler.PublicProperty `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "sea-view-loft", resp.Items[0].ID)
	// Host identifiers stay internal.
	assert.NotContains(t, rec.Body.String(), "hostId")
	assert.NotContains(t, rec.Body.String(), "host_id")
}

func TestGetPropertySuccess(t *testing.T) {
	e, mock := newPropertyServer(t)

	mock.ExpectQuery("FROM properties WHERE id =").
		WithArgs("sea-view-loft").
		WillReturnRows(sqlmock.NewRows(propertyCols).
			AddRow(propertyRow("sea-view-loft", 9, "Sea View Loft", "Lisbon", 120)...))

	rec := doJSON(e, http.MethodGet, "/v1/properties/sea-view-loft", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Item handler.PublicProperty `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sea-view-loft", resp.Item.ID)
	assert.Equal(t, float64(120), resp.Item.PricePerNight)
}

func TestGetPropertyNotFound(t *testing.T) {
	e, mock := newPropertyServer(t)

	mock.ExpectQuery("FROM properties WHERE id =").
		WithArgs("no-such-listing").
		WillReturnError(sql.ErrNoRows)

	rec := doJSON(e, http.MethodGet, "/v1/properties/no-such-listing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const validListing = `{"id":"sea-view-loft","title":"Sea View Loft","location":"Lisbon","pricePerNight":120}`

func TestCreatePropertyRequiresToken(t *testing.T) {
	e, mock := newPropertyServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/properties", "", validListing)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePropertyRequiresHostRole(t *testing.T) {
	e, mock := newPropertyServer(t)

	// bearer issues a GUEST token; listing creation is host-only.
	rec := doJSON(e, http.MethodPost, "/v1/properties", bearer(t, 9), validListing)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePropertySuccess(t *testing.T) {
	e, mock := newPropertyServer(t)

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO properties")).
		WithArgs("sea-view-loft", uint64(9), "Sea View Loft", sqlmock.AnyArg(), "Lisbon", float64(120)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at, updated_at FROM properties")).
		WithArgs("sea-view-loft").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	rec := doJSON(e, http.MethodPost, "/v1/properties", hostBearer(t, 9), validListing)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Item handler.PublicProperty `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sea-view-loft", resp.Item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePropertyDuplicateSlug(t *testing.T) {
	e, mock := newPropertyServer(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO properties")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'sea-view-loft' for key 'PRIMARY'"))

	rec := doJSON(e, http.MethodPost, "/v1/properties", hostBearer(t, 9), validListing)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestCreatePropertyRejectsBadSlug(t *testing.T) {
	e, mock := newPropertyServer(t)

	body := `{"id":"Not A Slug!","title":"Sea View Loft","location":"Lisbon","pricePerNight":120}`
	rec := doJSON(e, http.MethodPost, "/v1/properties", hostBearer(t, 9), body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "invalid input must not reach the database")
}

func TestCreatePropertyRejectsNegativePrice(t *testing.T) {
	e, mock := newPropertyServer(t)

	body := `{"id":"sea-view-loft","title":"Sea View Loft","location":"Lisbon","pricePerNight":-1}`
	rec := doJSON(e, http.MethodPost, "/v1/properties", hostBearer(t, 9), body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
