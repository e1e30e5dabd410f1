package inventory

import (
	"errors"
	"testing"

	"github.com/iliyamo/train-seat-reservation/internal/catalog"
	"github.com/iliyamo/train-seat-reservation/internal/lock"
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

const date = model.TravelDate("2030-06-01")

func newTestInventory(t *testing.T) (*Inventory, *lock.Table) {
	t.Helper()
	cat := catalog.New()
	train := &model.Train{
		ID:   "T1",
		Name: "Test Express",
		Route: []model.RouteStop{
			{StationCode: "AAA", DistanceKM: 0},
			{StationCode: "BBB", DistanceKM: 100},
		},
	}
	train.Coaches = []*model.Coach{
		model.NewCoach("S1", "T1", model.CoachSleeper, 4, model.SleeperBerthCycle),
		model.NewCoach("S2", "T1", model.CoachSleeper, 2, model.SleeperBerthCycle),
		model.NewCoach("C1", "T1", model.CoachACChair, 2, nil),
	}
	if err := cat.Register(train); err != nil {
		t.Fatalf("register train: %v", err)
	}
	locks := lock.NewTable(lock.DefaultTTL)
	return New(cat, locks), locks
}

func TestAvailableSeatsOrdering(t *testing.T) {
	inv, _ := newTestInventory(t)
	seats, err := inv.AvailableSeats("T1", model.CoachSleeper, date)
	if err != nil {
		t.Fatalf("available seats: %v", err)
	}
	want := []string{"S1-1", "S1-2", "S1-3", "S1-4", "S2-1", "S2-2"}
	if len(seats) != len(want) {
		t.Fatalf("expected %d seats, got %d", len(want), len(seats))
	}
	for i, s := range seats {
		if s.ID != want[i] {
			t.Fatalf("seat %d: got %s want %s (ordering is load-bearing)", i, s.ID, want[i])
		}
	}
}

func TestCommitRequiresLock(t *testing.T) {
	inv, _ := newTestInventory(t)
	err := inv.Commit("S1-1", date, "PNR1", "holder")
	if !errors.Is(err, ErrCommitWithoutLock) {
		t.Fatalf("expected ErrCommitWithoutLock, got %v", err)
	}
}

func TestCommitAndReverse(t *testing.T) {
	inv, locks := newTestInventory(t)
	if !locks.TryAcquire("S1-1", string(date), "holder") {
		t.Fatalf("acquire failed")
	}
	if err := inv.Commit("S1-1", date, "PNR1", "holder"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	locks.Release("S1-1", string(date), "holder")

	if id, ok := inv.BookingAt("S1-1", date); !ok || id != "PNR1" {
		t.Fatalf("expected PNR1 at S1-1, got %q ok=%v", id, ok)
	}
	seats, _ := inv.AvailableSeats("T1", model.CoachSleeper, date)
	for _, s := range seats {
		if s.ID == "S1-1" {
			t.Fatalf("committed seat must not appear available")
		}
	}

	inv.Reverse("S1-1", date)
	if _, ok := inv.BookingAt("S1-1", date); ok {
		t.Fatalf("reverse should clear the commit")
	}
	seats, _ = inv.AvailableSeats("T1", model.CoachSleeper, date)
	if len(seats) != 6 {
		t.Fatalf("expected all 6 sleeper seats back, got %d", len(seats))
	}
}

func TestDoubleCommitRejected(t *testing.T) {
	inv, locks := newTestInventory(t)
	locks.TryAcquire("S1-1", string(date), "h1")
	if err := inv.Commit("S1-1", date, "PNR1", "h1"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	// Second writer somehow holding its own lock must still bounce
	// off the occupied slot.
	locks.Release("S1-1", string(date), "h1")
	locks.TryAcquire("S1-1", string(date), "h2")
	err := inv.Commit("S1-1", date, "PNR2", "h2")
	if !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
}

func TestLockedSeatsExcluded(t *testing.T) {
	inv, locks := newTestInventory(t)
	locks.TryAcquire("S1-2", string(date), "someone")
	seats, err := inv.AvailableSeats("T1", model.CoachSleeper, date)
	if err != nil {
		t.Fatalf("available seats: %v", err)
	}
	for _, s := range seats {
		if s.ID == "S1-2" {
			t.Fatalf("locked seat must not appear available")
		}
	}
	if len(seats) != 5 {
		t.Fatalf("expected 5 seats with one locked, got %d", len(seats))
	}
}

func TestDatesAreIndependent(t *testing.T) {
	inv, locks := newTestInventory(t)
	other := model.TravelDate("2030-06-02")
	locks.TryAcquire("S1-1", string(date), "h1")
	if err := inv.Commit("S1-1", date, "PNR1", "h1"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	seats, _ := inv.AvailableSeats("T1", model.CoachSleeper, other)
	if len(seats) != 6 {
		t.Fatalf("a commit on one date must not affect another, got %d seats", len(seats))
	}
}

func TestUnknownTrain(t *testing.T) {
	inv, _ := newTestInventory(t)
	if _, err := inv.AvailableSeats("NOPE", model.CoachSleeper, date); !errors.Is(err, catalog.ErrTrainNotFound) {
		t.Fatalf("expected ErrTrainNotFound, got %v", err)
	}
}
