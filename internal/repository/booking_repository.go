package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stayfinder-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  Each booking is a single
// row in the bookings table; there is no update or delete path, bookings are
// written once and read back by owner.  All timestamp fields are stored in
// UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a new booking and populates the generated ID, status and
// created_at on the provided record.  The row is queried back after the
// insert so column defaults set by the database are reflected in the
// returned record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(owner_id, resource_id, resource_title, resource_image, check_in, check_out, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		b.OwnerID, b.ResourceID, nullStr(b.ResourceTitle), nullStr(b.ResourceImage),
		b.CheckIn, b.CheckOut, b.TotalPrice)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	// Dates are formatted server-side so they scan as plain strings
	// despite parseTime=true on the connection.
	const sel = `SELECT id, owner_id, resource_id, resource_title, resource_image,
		DATE_FORMAT(check_in, '%Y-%m-%d'), DATE_FORMAT(check_out, '%Y-%m-%d'),
		total_price, status, created_at
		FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(bookingDest(b)...)
}

// ListByOwner returns every booking created by the given owner, most recent
// first.  Owners with no bookings get an empty slice, never an error.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Booking, error) {
	const q = `SELECT id, owner_id, resource_id, resource_title, resource_image,
		DATE_FORMAT(check_in, '%Y-%m-%d'), DATE_FORMAT(check_out, '%Y-%m-%d'),
		total_price, status, created_at
		FROM bookings WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(bookingDest(&b)...); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// bookingDest returns scan destinations matching the booking column list
// used by Create and ListByOwner.  Nullable columns are scanned through
// sql.Null* wrappers bound to the record's pointer fields.
func bookingDest(b *model.Booking) []interface{} {
	return []interface{}{
		&b.ID, &b.OwnerID, &b.ResourceID,
		&nullStrScanner{&b.ResourceTitle}, &nullStrScanner{&b.ResourceImage},
		&b.CheckIn, &b.CheckOut, &b.TotalPrice, &b.Status, &b.CreatedAt,
	}
}

// nullStr converts an optional string field to its driver value.
func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullStrScanner scans a nullable text column into a *string field.
type nullStrScanner struct{ dst **string }

func (n *nullStrScanner) Scan(v interface{}) error {
	var ns sql.NullString
	if err := ns.Scan(v); err != nil {
		return err
	}
	if !ns.Valid {
		*n.dst = nil
		return nil
	}
	s := ns.String
	*n.dst = &s
	return nil
}
