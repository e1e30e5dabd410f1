// Package allocation assigns physical seats to a passenger list for
// one train/coach-type/date bucket.  Allocation is two-phase and
// all-or-nothing: every passenger's seat is locked first, then every
// seat is committed and the locks released.  If any passenger cannot
// be locked a seat, every lock taken in the attempt is rolled back and
// the inventory is left exactly as it was found.
package allocation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/train-seat-reservation/internal/inventory"
	"github.com/iliyamo/train-seat-reservation/internal/lock"
	"github.com/iliyamo/train-seat-reservation/internal/model"
	"github.com/iliyamo/train-seat-reservation/pkg/metrics"
)

// Assignment records the seat chosen for one passenger, by input
// index.
type Assignment struct {
	Passenger int
	CoachID   string
	SeatID    string
	Berth     model.BerthType
}

// Result is the outcome of an allocation attempt.  A shortfall of
// seats is an expected, recoverable outcome — the caller uses it to
// decide waitlisting — so it is reported here rather than as an error.
type Result struct {
	Success     bool
	Assignments []Assignment
	Message     string
}

// Allocator wires the inventory and the lock table together.  Metrics
// may be nil (tests construct allocators without a registry).
type Allocator struct {
	inv     *inventory.Inventory
	locks   *lock.Table
	metrics *metrics.Metrics
}

// New returns an allocator over the given inventory and lock table.
func New(inv *inventory.Inventory, locks *lock.Table, m *metrics.Metrics) *Allocator {
	return &Allocator{inv: inv, locks: locks, metrics: m}
}

type held struct {
	assignment Assignment
	date       model.TravelDate
}

// Allocate assigns one seat per passenger, in passenger input order.
// A passenger with a berth preference is matched against preferred
// seats first, then falls back to the first available seat in
// inventory order.  The first lockable match wins, which makes the
// outcome deterministic for a fixed input and inventory state.
//
// bookingID is written into each seat's date slot on success.  Errors
// are reserved for infrastructure faults (unknown train, invariant
// breaches); "not enough seats" comes back as Result.Success == false.
func (a *Allocator) Allocate(trainID string, passengers []model.Passenger, ct model.CoachType, date model.TravelDate, bookingID string) (Result, error) {
	start := time.Now()
	defer func() {
		if a.metrics != nil {
			a.metrics.AllocationTime.Observe(time.Since(start).Seconds())
		}
	}()

	// One holder id per attempt; rollback releases only our own locks.
	holder := uuid.NewString()
	locked := make([]held, 0, len(passengers))

	rollback := func() {
		for _, h := range locked {
			a.locks.Release(h.assignment.SeatID, string(h.date), holder)
		}
	}

	// Phase 1: lock a seat for every passenger.
	for i, p := range passengers {
		seats, err := a.inv.AvailableSeats(trainID, ct, date)
		if err != nil {
			rollback()
			return Result{}, err
		}
		seat, ok := a.lockOne(seats, p.Preference, date, holder)
		if !ok {
			rollback()
			return Result{
				Success: false,
				Message: fmt.Sprintf("no seat available for passenger %d of %d in %s on %s", i+1, len(passengers), ct, date),
			}, nil
		}
		locked = append(locked, held{
			assignment: Assignment{Passenger: i, CoachID: seat.CoachID, SeatID: seat.ID, Berth: seat.Berth},
			date:       date,
		})
	}

	// Phase 2: commit every locked seat, then drop the provisional
	// locks.  A commit failure here means another writer broke the
	// lock discipline; undo everything and report it.
	for n, h := range locked {
		if err := a.inv.Commit(h.assignment.SeatID, date, bookingID, holder); err != nil {
			for _, done := range locked[:n] {
				a.inv.Reverse(done.assignment.SeatID, date)
			}
			rollback()
			return Result{}, fmt.Errorf("commit failed mid-allocation: %w", err)
		}
	}
	assignments := make([]Assignment, 0, len(locked))
	for _, h := range locked {
		a.locks.Release(h.assignment.SeatID, string(h.date), holder)
		assignments = append(assignments, h.assignment)
	}
	return Result{Success: true, Assignments: assignments}, nil
}

// lockOne picks and locks a seat from the candidate list.  Preferred
// berths are scanned first; any lockable seat wins as a fallback.
// Candidates can be snatched between the availability query and
// TryAcquire, so a failed acquire just moves on to the next seat.
func (a *Allocator) lockOne(seats []model.Seat, pref model.BerthType, date model.TravelDate, holder string) (model.Seat, bool) {
	if pref != "" {
		for _, s := range seats {
			if s.Berth != pref {
				continue
			}
			if a.locks.TryAcquire(s.ID, string(date), holder) {
				return s, true
			}
			a.countConflict()
		}
	}
	for _, s := range seats {
		if a.locks.TryAcquire(s.ID, string(date), holder) {
			return s, true
		}
		a.countConflict()
	}
	return model.Seat{}, false
}

func (a *Allocator) countConflict() {
	if a.metrics != nil {
		a.metrics.LockConflicts.Inc()
	}
}
