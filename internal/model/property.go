package model

import "time"

// Property mirrors the 'properties' table.  Each row is a listing
// that guests can browse and book.  HostID references the user who
// owns the listing.
//
// Fields:
//  ID           – opaque listing identifier (externally supplied slug).
//  HostID       – user who owns the listing.
//  Title        – display title.
//  Image        – cover image URL (nullable).
//  Location     – free-form location string.
//  PricePerNight – nightly price.
//  IsActive     – whether the listing is bookable.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Property struct {
	ID            string    // properties.id
	HostID        uint64    // properties.host_id
	Title         string    // properties.title
	Image         *string   // properties.image (nullable)
	Location      string    // properties.location
	PricePerNight float64   // properties.price_per_night
	IsActive      bool      // properties.is_active
	CreatedAt     time.Time // properties.created_at
	UpdatedAt     time.Time // properties.updated_at
}
