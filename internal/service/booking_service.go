// Package service holds the request-level business rules for bookings.  It
// validates input, binds every operation to the verified caller identity and
// delegates persistence to an injected store.
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/stayfinder-booking/internal/model"
	"github.com/iliyamo/stayfinder-booking/internal/queue"
)

// dateLayout is the wire format for check-in/check-out dates.
const dateLayout = "2006-01-02"

// storeTimeout bounds every persistence call so a stuck database round trip
// cannot block the request indefinitely.
const storeTimeout = 5 * time.Second

// BookingStore is the persistence contract the service depends on.  It is
// satisfied by repository.BookingRepo and by in-memory fakes in tests.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Booking, error)
}

// PublishFunc publishes a booking.created event.  Publishing is best effort;
// a failure is logged and never surfaces to the caller.
type PublishFunc func(ctx context.Context, ev queue.BookingCreatedEvent) error

// BookingService applies validation rules and creates/retrieves bookings
// scoped to the caller.  It is stateless; each call is independent.
type BookingService struct {
	store   BookingStore
	publish PublishFunc // nil disables eventing
}

// NewBookingService constructs a BookingService.  The store must be non-nil;
// publish may be nil when no broker is configured.
func NewBookingService(store BookingStore, publish PublishFunc) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{store: store, publish: publish}
}

// CreateBookingInput carries the client-supplied booking fields.  TotalPrice
// is a pointer so an absent field can be told apart from an explicit zero.
// The owner is never part of the input; it always comes from the verified
// caller identity.
type CreateBookingInput struct {
	ResourceID    string
	ResourceTitle *string
	ResourceImage *string
	CheckIn       string
	CheckOut      string
	TotalPrice    *float64
}

// CreateBooking validates the input and persists a new booking owned by
// ownerID.  Every missing required field is reported in one ValidationError.
// Dates must be YYYY-MM-DD with checkIn strictly before checkOut, and the
// price must not be negative.  Persistence failures are wrapped in
// ErrStorage.
func (s *BookingService) CreateBooking(ctx context.Context, ownerID uint64, in CreateBookingInput) (model.Booking, error) {
	var missing []string
	if in.ResourceID == "" {
		missing = append(missing, "resourceId")
	}
	if in.CheckIn == "" {
		missing = append(missing, "checkIn")
	}
	if in.CheckOut == "" {
		missing = append(missing, "checkOut")
	}
	if in.TotalPrice == nil {
		missing = append(missing, "totalPrice")
	}
	if len(missing) > 0 {
		return model.Booking{}, &ValidationError{Missing: missing}
	}

	checkIn, err := time.Parse(dateLayout, in.CheckIn)
	if err != nil {
		return model.Booking{}, &ValidationError{Reason: "checkIn must be a YYYY-MM-DD date"}
	}
	checkOut, err := time.Parse(dateLayout, in.CheckOut)
	if err != nil {
		return model.Booking{}, &ValidationError{Reason: "checkOut must be a YYYY-MM-DD date"}
	}
	if !checkIn.Before(checkOut) {
		return model.Booking{}, &ValidationError{Reason: "checkIn must be before checkOut"}
	}
	if *in.TotalPrice < 0 {
		return model.Booking{}, &ValidationError{Reason: "totalPrice must not be negative"}
	}

	b := model.Booking{
		OwnerID:       ownerID,
		ResourceID:    in.ResourceID,
		ResourceTitle: in.ResourceTitle,
		ResourceImage: in.ResourceImage,
		CheckIn:       in.CheckIn,
		CheckOut:      in.CheckOut,
		TotalPrice:    *in.TotalPrice,
	}
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.store.Create(cctx, &b); err != nil {
		return model.Booking{}, fmt.Errorf("%w: create booking: %v", ErrStorage, err)
	}

	if s.publish != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:  b.ID,
			OwnerID:    b.OwnerID,
			ResourceID: b.ResourceID,
			CheckIn:    b.CheckIn,
			CheckOut:   b.CheckOut,
			TotalPrice: b.TotalPrice,
			Status:     b.Status,
			CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if b.ResourceTitle != nil {
			ev.ResourceTitle = *b.ResourceTitle
		}
		if err := s.publish(ctx, ev); err != nil {
			log.Printf("booking-service: publish booking.created failed: %v", err)
		}
	}
	return b, nil
}

// ListMyBookings returns all bookings created by ownerID, most recent first.
// An owner with no bookings gets an empty slice.
func (s *BookingService) ListMyBookings(ctx context.Context, ownerID uint64) ([]model.Booking, error) {
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	out, err := s.store.ListByOwner(cctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %v", ErrStorage, err)
	}
	return out, nil
}
