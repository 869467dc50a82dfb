package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stayfinder-booking/internal/model"
)

var bookingCols = []string{
	"id", "owner_id", "resource_id", "resource_title", "resource_image",
	"check_in", "check_out", "total_price", "status", "created_at",
}

func TestBookingRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	title := "Sea View Loft"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(uint64(42), "r1", sqlmock.AnyArg(), sqlmock.AnyArg(), "2024-06-01", "2024-06-05", 1200.0).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = ?")).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(11, 42, "r1", title, nil, "2024-06-01", "2024-06-05", 1200.0, "confirmed", created))

	repo := NewBookingRepo(db)
	b := model.Booking{
		OwnerID:       42,
		ResourceID:    "r1",
		ResourceTitle: &title,
		CheckIn:       "2024-06-01",
		CheckOut:      "2024-06-05",
		TotalPrice:    1200,
	}
	require.NoError(t, repo.Create(context.Background(), &b))

	assert.Equal(t, uint64(11), b.ID)
	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, created, b.CreatedAt)
	require.NotNil(t, b.ResourceTitle)
	assert.Equal(t, "Sea View Loft", *b.ResourceTitle)
	assert.Nil(t, b.ResourceImage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepoCreatePropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(errors.New("driver: bad connection"))

	repo := NewBookingRepo(db)
	b := model.Booking{OwnerID: 42, ResourceID: "r1", CheckIn: "2024-06-01", CheckOut: "2024-06-05", TotalPrice: 100}
	assert.Error(t, repo.Create(context.Background(), &b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepoListByOwnerOrdersRecentFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC)
	older := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE owner_id = ?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(12, 42, "r2", nil, nil, "2024-07-01", "2024-07-03", 300.0, "confirmed", newer).
			AddRow(11, 42, "r1", nil, nil, "2024-06-01", "2024-06-05", 1200.0, "confirmed", older))

	repo := NewBookingRepo(db)
	out, err := repo.ListByOwner(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(12), out[0].ID)
	assert.Equal(t, uint64(11), out[1].ID)
	assert.True(t, out[0].CreatedAt.After(out[1].CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepoListByOwnerEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE owner_id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := NewBookingRepo(db)
	out, err := repo.ListByOwner(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
