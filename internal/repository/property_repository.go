package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/stayfinder-booking/internal/model"
)

// PropertyRepo provides access to the properties table.  Listings are
// created by hosts and browsed publicly by guests before booking.
type PropertyRepo struct {
	db *sql.DB
}

// NewPropertyRepo returns a new PropertyRepo bound to the given database.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// Create inserts a listing owned by the given host.  The caller supplies the
// opaque listing ID (a slug) so URLs stay stable across environments.  A slug
// collision surfaces as ErrPropertyExists.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	const q = `INSERT INTO properties (id, host_id, title, image, location, price_per_night)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.HostID, p.Title, nullStr(p.Image), p.Location, p.PricePerNight)
	if err != nil {
		// MySQL duplicate-key error on the primary key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrPropertyExists
		}
		return err
	}
	const sel = `SELECT created_at, updated_at FROM properties WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// ListActive returns all bookable listings ordered by most recently created.
func (r *PropertyRepo) ListActive(ctx context.Context) ([]model.Property, error) {
	const q = `SELECT id, host_id, title, image, location, price_per_night, is_active, created_at, updated_at
		FROM properties WHERE is_active = 1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Property, 0)
	for rows.Next() {
		var p model.Property
		if err := scanProperty(rows.Scan, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches a single listing.  Returns ErrPropertyNotFound when no row
// matches.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (model.Property, error) {
	const q = `SELECT id, host_id, title, image, location, price_per_night, is_active, created_at, updated_at
		FROM properties WHERE id = ? LIMIT 1`
	var p model.Property
	err := scanProperty(r.db.QueryRowContext(ctx, q, id).Scan, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Property{}, ErrPropertyNotFound
	}
	return p, err
}

// scanProperty scans one property row through the provided scan function so
// QueryRow and Rows share the same column order.
func scanProperty(scan func(...interface{}) error, p *model.Property) error {
	var (
		img       sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	if err := scan(&p.ID, &p.HostID, &p.Title, &img, &p.Location,
		&p.PricePerNight, &p.IsActive, &createdAt, &updatedAt); err != nil {
		return err
	}
	if img.Valid {
		s := img.String
		p.Image = &s
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return nil
}
