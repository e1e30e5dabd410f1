package booking

import (
	"testing"
	"time"
)

func TestRefundAmountTiers(t *testing.T) {
	departure := time.Date(2030, 6, 10, 17, 0, 0, 0, time.UTC)
	const fare = 1000

	cases := []struct {
		name   string
		before time.Duration
		want   int64
	}{
		{"just over 48h", 48*time.Hour + time.Minute, 900},
		{"exactly 48h drops a tier", 48 * time.Hour, 750},
		{"just over 24h", 24*time.Hour + time.Minute, 750},
		{"exactly 24h drops a tier", 24 * time.Hour, 500},
		{"just over 12h", 12*time.Hour + time.Minute, 500},
		{"exactly 12h drops a tier", 12 * time.Hour, 250},
		{"just over 4h", 4*time.Hour + time.Minute, 250},
		{"exactly 4h refunds nothing", 4 * time.Hour, 0},
		{"one hour before", time.Hour, 0},
		{"after departure", -time.Hour, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := departure.Add(-tc.before)
			if got := RefundAmount(fare, departure, now); got != tc.want {
				t.Fatalf("RefundAmount(%d, %v before departure) = %d, want %d", fare, tc.before, got, tc.want)
			}
		})
	}
}

func TestRefundAmountScalesWithFare(t *testing.T) {
	departure := time.Date(2030, 6, 10, 17, 0, 0, 0, time.UTC)
	now := departure.Add(-72 * time.Hour)
	if got := RefundAmount(2350, departure, now); got != 2115 {
		t.Fatalf("90%% of 2350 should be 2115, got %d", got)
	}
	if got := RefundAmount(0, departure, now); got != 0 {
		t.Fatalf("zero fare refunds zero, got %d", got)
	}
}
