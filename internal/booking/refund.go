package booking

import "time"

// Refund tiers by time remaining before departure.  Boundaries are
// strictly greater-than: a cancellation exactly 48h before departure
// falls into the 75% tier, not the 90% one.
var refundTiers = []struct {
	moreThan time.Duration
	percent  int64
}{
	{48 * time.Hour, 90},
	{24 * time.Hour, 75},
	{12 * time.Hour, 50},
	{4 * time.Hour, 25},
}

// RefundAmount computes the refund for cancelling a booking of the
// given total fare at now, departing at departure.  Past-departure
// cancellations refund nothing.
func RefundAmount(totalFare int64, departure, now time.Time) int64 {
	remaining := departure.Sub(now)
	for _, tier := range refundTiers {
		if remaining > tier.moreThan {
			return totalFare * tier.percent / 100
		}
	}
	return 0
}
