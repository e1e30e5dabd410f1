// Package fare computes ticket prices.  The calculation is a pure
// function of coach type and route distance; no state, no I/O.
package fare

import (
	"fmt"
	"math"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// ratePerKM is the per-kilometre base rate per coach class, in rupees.
// Rates are strictly descending from First AC down to General.
var ratePerKM = map[model.CoachType]float64{
	model.CoachFirstAC:       6.00,
	model.CoachSecondAC:      4.50,
	model.CoachThirdAC:       3.00,
	model.CoachSleeper:       2.00,
	model.CoachACChair:       1.80,
	model.CoachChair:         1.40,
	model.CoachSecondSeating: 1.00,
	model.CoachGeneral:       0.60,
}

// For returns the per-passenger fare for travelling distanceKM in a
// coach of type ct, rounded to the nearest rupee.
func For(ct model.CoachType, distanceKM float64) (int64, error) {
	rate, ok := ratePerKM[ct]
	if !ok {
		return 0, fmt.Errorf("no fare rate for coach type %q", ct)
	}
	if distanceKM < 0 {
		return 0, fmt.Errorf("negative distance %.2f", distanceKM)
	}
	return int64(math.Round(rate * distanceKM)), nil
}
