package repository

import (
	"context"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// BookingStore is the storage abstraction for booking records.
// Bookings are never deleted — cancelled bookings stay stored for
// audit and refund record-keeping — so the interface deliberately has
// no delete operation.
//
// Implementations must return booking lists in a stable order:
// ListByStatus sorts ascending by waitlist/RAC position, which the
// promotion engine relies on for fairness.
type BookingStore interface {
	// Create stores a new booking.  The PNR must be unused.
	Create(ctx context.Context, b *model.Booking) error

	// Update persists the current state of an existing booking.
	Update(ctx context.Context, b *model.Booking) error

	// GetByPNR returns the booking with the given PNR or
	// ErrBookingNotFound.
	GetByPNR(ctx context.Context, pnr string) (*model.Booking, error)

	// ListByUser returns all bookings created by the user, newest
	// first.
	ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error)

	// ListByStatus returns the bookings in the given status for one
	// train/date/coach-type bucket, ascending by queue position.
	ListByStatus(ctx context.Context, trainID string, date model.TravelDate, ct model.CoachType, status model.BookingStatus) ([]*model.Booking, error)
}
