package model

import "time"

// Booking status values as stored in bookings.status.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking records a stay reserved by a user for a property over a
// date range.  The property title and image are denormalized
// snapshots taken at booking time so listings can change without
// rewriting history.
//
// Fields:
//  ID            – primary key identifier.
//  OwnerID       – user who created the booking.
//  ResourceID    – property being booked.
//  ResourceTitle – property title at booking time (nullable).
//  ResourceImage – property cover image URL at booking time (nullable).
//  CheckIn       – first night, YYYY-MM-DD.
//  CheckOut      – checkout day, YYYY-MM-DD.
//  TotalPrice    – total price for the stay.
//  Status        – booking state (confirmed, cancelled).
//  CreatedAt     – creation timestamp.
type Booking struct {
	ID            uint64    `json:"id"`                      // bookings.id
	OwnerID       uint64    `json:"ownerId"`                 // bookings.owner_id
	ResourceID    string    `json:"resourceId"`              // bookings.resource_id
	ResourceTitle *string   `json:"resourceTitle,omitempty"` // bookings.resource_title (nullable)
	ResourceImage *string   `json:"resourceImage,omitempty"` // bookings.resource_image (nullable)
	CheckIn       string    `json:"checkIn"`                 // bookings.check_in
	CheckOut      string    `json:"checkOut"`                // bookings.check_out
	TotalPrice    float64   `json:"totalPrice"`              // bookings.total_price
	Status        string    `json:"status"`                  // bookings.status
	CreatedAt     time.Time `json:"createdAt"`               // bookings.created_at
}
