package fare

import (
	"testing"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

func TestForRatesByClass(t *testing.T) {
	cases := []struct {
		ct       model.CoachType
		distance float64
		want     int64
	}{
		{model.CoachFirstAC, 100, 600},
		{model.CoachSecondAC, 100, 450},
		{model.CoachThirdAC, 100, 300},
		{model.CoachSleeper, 100, 200},
		{model.CoachACChair, 100, 180},
		{model.CoachChair, 100, 140},
		{model.CoachSecondSeating, 100, 100},
		{model.CoachGeneral, 100, 60},
	}
	for _, tc := range cases {
		t.Run(string(tc.ct), func(t *testing.T) {
			got, err := For(tc.ct, tc.distance)
			if err != nil {
				t.Fatalf("For: %v", err)
			}
			if got != tc.want {
				t.Fatalf("For(%s, %.0f) = %d, want %d", tc.ct, tc.distance, got, tc.want)
			}
		})
	}
}

func TestForRoundsToNearestRupee(t *testing.T) {
	// 1.80 * 12.5 = 22.5, rounds up to 23.
	got, err := For(model.CoachACChair, 12.5)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if got != 23 {
		t.Fatalf("expected 23, got %d", got)
	}
	// 0.60 * 0.5 = 0.30, rounds down to 0.
	got, err = For(model.CoachGeneral, 0.5)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestForRejectsBadInput(t *testing.T) {
	if _, err := For("BUNK", 100); err == nil {
		t.Fatalf("unknown coach type must error")
	}
	if _, err := For(model.CoachSleeper, -1); err == nil {
		t.Fatalf("negative distance must error")
	}
}

func TestForZeroDistance(t *testing.T) {
	got, err := For(model.CoachSleeper, 0)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if got != 0 {
		t.Fatalf("zero distance should be free, got %d", got)
	}
}
