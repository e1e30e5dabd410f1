// Package inventory tracks which booking occupies which (seat, travel
// date) slot.  It is the single write path for seat occupancy: the
// allocator commits through it, cancellation reverses through it, and
// availability queries read through it.  Nothing else in the codebase
// touches the occupancy map.
package inventory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/iliyamo/train-seat-reservation/internal/catalog"
	"github.com/iliyamo/train-seat-reservation/internal/lock"
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// ErrCommitWithoutLock is returned when a caller tries to commit a
// seat it has not locked.  This is a caller bug, not a recoverable
// business outcome, so it surfaces as an error rather than a false.
var ErrCommitWithoutLock = errors.New("seat commit without an active lock")

// ErrSlotOccupied is returned when a commit targets a (seat, date)
// slot that already carries a booking.  With the lock discipline in
// place this should never fire; it is the last line of defence for the
// at-most-one-booking invariant.
var ErrSlotOccupied = errors.New("seat already committed for this date")

type slotKey struct {
	seatID string
	date   model.TravelDate
}

// Inventory derives per-coach, per-date availability from committed
// bookings and active locks.  The occupancy map is guarded by its own
// mutex; lock-table state is consulted through the lock.Table API.
type Inventory struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	locks   *lock.Table
	commits map[slotKey]string // (seat, date) -> booking PNR
}

// New returns an empty inventory reading catalog data from cat and
// lock state from locks.
func New(cat *catalog.Catalog, locks *lock.Table) *Inventory {
	return &Inventory{
		catalog: cat,
		locks:   locks,
		commits: make(map[slotKey]string),
	}
}

// AvailableSeats returns the seats of the given coach type across all
// coaches of the train that carry neither a committed booking for the
// date nor an unexpired lock.  Order is coach-registration order, then
// seat order within the coach; the allocator's tie-break rule depends
// on this ordering, so it must stay insertion-ordered.
func (inv *Inventory) AvailableSeats(trainID string, ct model.CoachType, date model.TravelDate) ([]model.Seat, error) {
	train, err := inv.catalog.Train(trainID)
	if err != nil {
		return nil, err
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	var out []model.Seat
	for _, coach := range train.CoachesOf(ct) {
		for _, seat := range coach.Seats {
			if _, booked := inv.commits[slotKey{seatID: seat.ID, date: date}]; booked {
				continue
			}
			if inv.locks.IsLocked(seat.ID, string(date)) {
				continue
			}
			out = append(out, seat)
		}
	}
	return out, nil
}

// AvailableCount is AvailableSeats reduced to a count; the promotion
// engine queries this live on every promotion decision.
func (inv *Inventory) AvailableCount(trainID string, ct model.CoachType, date model.TravelDate) (int, error) {
	seats, err := inv.AvailableSeats(trainID, ct, date)
	if err != nil {
		return 0, err
	}
	return len(seats), nil
}

// Commit writes the booking id into the (seat, date) slot.  The caller
// must hold the corresponding seat lock under holder; committing
// without the lock returns ErrCommitWithoutLock.
func (inv *Inventory) Commit(seatID string, date model.TravelDate, bookingID string, holder string) error {
	if !inv.locks.HeldBy(seatID, string(date), holder) {
		return fmt.Errorf("seat %s on %s: %w", seatID, date, ErrCommitWithoutLock)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	k := slotKey{seatID: seatID, date: date}
	if existing, ok := inv.commits[k]; ok {
		return fmt.Errorf("seat %s on %s held by booking %s: %w", seatID, date, existing, ErrSlotOccupied)
	}
	inv.commits[k] = bookingID
	return nil
}

// Reverse clears a prior commit.  Reversing an empty slot is a no-op;
// cancellation paths call it per assigned seat without re-checking.
func (inv *Inventory) Reverse(seatID string, date model.TravelDate) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	delete(inv.commits, slotKey{seatID: seatID, date: date})
}

// BookingAt reports the booking occupying (seat, date), if any.
func (inv *Inventory) BookingAt(seatID string, date model.TravelDate) (string, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	id, ok := inv.commits[slotKey{seatID: seatID, date: date}]
	return id, ok
}

// CommittedCount returns how many seats carry a booking for the given
// train/coach-type/date bucket.  Exposed for metrics and tests.
func (inv *Inventory) CommittedCount(trainID string, ct model.CoachType, date model.TravelDate) (int, error) {
	train, err := inv.catalog.Train(trainID)
	if err != nil {
		return 0, err
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	n := 0
	for _, coach := range train.CoachesOf(ct) {
		for _, seat := range coach.Seats {
			if _, ok := inv.commits[slotKey{seatID: seat.ID, date: date}]; ok {
				n++
			}
		}
	}
	return n, nil
}
