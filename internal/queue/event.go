// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully persisted.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID     uint64  `json:"booking_id"`
	OwnerID       uint64  `json:"owner_id"`
	ResourceID    string  `json:"resource_id"`
	ResourceTitle string  `json:"resource_title,omitempty"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}
