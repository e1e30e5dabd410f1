package catalog

import (
	"errors"
	"testing"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

func TestRegisterAndLookup(t *testing.T) {
	c := New()
	if err := c.Register(&model.Train{ID: "T1", Name: "One"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := c.Train("T1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Name != "One" {
		t.Fatalf("wrong train: %+v", got)
	}
	if _, err := c.Train("T2"); !errors.Is(err, ErrTrainNotFound) {
		t.Fatalf("expected ErrTrainNotFound, got %v", err)
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	c := New()
	if err := c.Register(&model.Train{ID: "T1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Register(&model.Train{ID: "T1"}); err == nil {
		t.Fatalf("duplicate registration must error")
	}
}

func TestTrainsKeepRegistrationOrder(t *testing.T) {
	c := New()
	for _, id := range []string{"T3", "T1", "T2"} {
		if err := c.Register(&model.Train{ID: id}); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	trains := c.Trains()
	want := []string{"T3", "T1", "T2"}
	for i, tr := range trains {
		if tr.ID != want[i] {
			t.Fatalf("entry %d: got %s want %s", i, tr.ID, want[i])
		}
	}
}

func TestSeedRegistersDemoTimetable(t *testing.T) {
	c := New()
	if err := Seed(c); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(c.Trains()) == 0 {
		t.Fatalf("seed must register trains")
	}
	tr, err := c.Train("12951")
	if err != nil {
		t.Fatalf("seeded train missing: %v", err)
	}
	if len(tr.Coaches) == 0 || len(tr.Route) < 2 {
		t.Fatalf("seeded train must have coaches and a route: %+v", tr)
	}
}
