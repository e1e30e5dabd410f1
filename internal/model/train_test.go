package model

import (
	"testing"
	"time"
)

func testTrain() *Train {
	return &Train{
		ID:            "12951",
		Name:          "Rajdhani Express",
		DepartureHour: 17,
		DepartureMin:  30,
		Route: []RouteStop{
			{StationCode: "BCT", StationName: "Mumbai Central", DistanceKM: 0},
			{StationCode: "BRC", StationName: "Vadodara Jn", DistanceKM: 392},
			{StationCode: "RTM", StationName: "Ratlam Jn", DistanceKM: 653},
			{StationCode: "NDLS", StationName: "New Delhi", DistanceKM: 1384},
		},
		Coaches: []*Coach{
			NewCoach("A1", "12951", CoachSecondAC, 4, SleeperBerthCycle),
			NewCoach("B1", "12951", CoachThirdAC, 4, SleeperBerthCycle),
			NewCoach("B2", "12951", CoachThirdAC, 4, SleeperBerthCycle),
		},
	}
}

func TestDistanceBetween(t *testing.T) {
	tr := testTrain()
	cases := []struct {
		src, dst string
		want     float64
	}{
		{"BCT", "NDLS", 1384},
		{"BRC", "RTM", 261},
		{"RTM", "BRC", 261}, // direction does not matter
	}
	for _, tc := range cases {
		got, err := tr.DistanceBetween(tc.src, tc.dst)
		if err != nil {
			t.Fatalf("DistanceBetween(%s, %s): %v", tc.src, tc.dst, err)
		}
		if got != tc.want {
			t.Fatalf("DistanceBetween(%s, %s) = %.0f, want %.0f", tc.src, tc.dst, got, tc.want)
		}
	}
	if _, err := tr.DistanceBetween("BCT", "XXX"); err == nil {
		t.Fatalf("off-route station must error")
	}
}

func TestHasStation(t *testing.T) {
	tr := testTrain()
	if !tr.HasStation("RTM") {
		t.Fatalf("RTM is on the route")
	}
	if tr.HasStation("XXX") {
		t.Fatalf("XXX is not on the route")
	}
}

func TestDepartureAt(t *testing.T) {
	tr := testTrain()
	date, err := ParseTravelDate("2030-06-10")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	want := time.Date(2030, 6, 10, 17, 30, 0, 0, time.UTC)
	if got := tr.DepartureAt(date); !got.Equal(want) {
		t.Fatalf("DepartureAt = %v, want %v", got, want)
	}
}

func TestCoachesOf(t *testing.T) {
	tr := testTrain()
	thirds := tr.CoachesOf(CoachThirdAC)
	if len(thirds) != 2 || thirds[0].ID != "B1" || thirds[1].ID != "B2" {
		t.Fatalf("expected [B1 B2] in registration order, got %v", thirds)
	}
	if got := tr.CoachesOf(CoachGeneral); len(got) != 0 {
		t.Fatalf("expected no general coaches, got %d", len(got))
	}
}

func TestNewCoachBerthCycle(t *testing.T) {
	c := NewCoach("S1", "T1", CoachSleeper, 10, SleeperBerthCycle)
	want := []BerthType{
		BerthLower, BerthMiddle, BerthUpper,
		BerthLower, BerthMiddle, BerthUpper,
		BerthSideLower, BerthSideUpper,
		BerthLower, BerthMiddle, // cycle wraps
	}
	for i, s := range c.Seats {
		if s.Berth != want[i] {
			t.Fatalf("seat %d: got %s want %s", i+1, s.Berth, want[i])
		}
		if s.Number != i+1 {
			t.Fatalf("seat numbers must be 1-based and sequential")
		}
	}
	if c.Seats[0].ID != "S1-1" || c.Seats[9].ID != "S1-10" {
		t.Fatalf("seat IDs must be <coach>-<number>")
	}
}

func TestNewCoachDefaultsToPlainSeats(t *testing.T) {
	c := NewCoach("D1", "T1", CoachChair, 3, nil)
	for _, s := range c.Seats {
		if s.Berth != BerthSeat {
			t.Fatalf("seating coach must default to BerthSeat, got %s", s.Berth)
		}
	}
}

func TestParseTravelDate(t *testing.T) {
	if _, err := ParseTravelDate("2030-06-10"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "10-06-2030", "2030-13-01", "tomorrow"} {
		if _, err := ParseTravelDate(bad); err == nil {
			t.Fatalf("malformed date %q accepted", bad)
		}
	}
}
