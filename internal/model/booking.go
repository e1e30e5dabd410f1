package model

import (
	"sync"
	"time"
)

// BookingState is the tagged state of a booking.  Status is the
// discriminant; the remaining fields carry variant-specific data and
// are meaningful only for the variants noted below.  Transitions are
// performed by the booking package's Transition function, which
// returns a new value instead of mutating in place.
//
// Fields:
//  Status       – current variant.
//  Position     – queue rank; set for WAITLISTED and RAC.
//  RefundAmount – refund granted on cancellation; set for CANCELLED.
//  CancelledAt  – cancellation instant; set for CANCELLED.
type BookingState struct {
	Status       BookingStatus
	Position     int
	RefundAmount int64
	CancelledAt  time.Time
}

// Booking is one reservation record: a passenger list travelling on a
// train/date/coach-type bucket between two stations.  Bookings are
// created in PENDING (seats committed, payment outstanding) or
// WAITLISTED (no seats available at creation) and are never deleted;
// cancelled bookings persist for audit and refund record-keeping.
//
// The embedded mutex serializes state transitions on a single booking
// so a concurrent cancel and promote cannot interleave.  Callers must
// hold the mutex across the read-transition-write sequence.
type Booking struct {
	mu sync.Mutex

	PNR         string
	UserID      uint64
	TrainID     string
	Date        TravelDate
	Source      string
	Destination string
	CoachType   CoachType
	Passengers  []Passenger
	TotalFare   int64
	State       BookingState
	CreatedAt   time.Time
	ConfirmedAt time.Time
}

// Lock acquires the booking's transition mutex.
func (b *Booking) Lock() { b.mu.Lock() }

// Unlock releases the booking's transition mutex.
func (b *Booking) Unlock() { b.mu.Unlock() }

// Status returns the current state discriminant.  The caller should
// hold the booking mutex if it intends to act on the answer.
func (b *Booking) Status() BookingStatus { return b.State.Status }
