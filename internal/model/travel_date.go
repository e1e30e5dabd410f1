package model

import (
	"fmt"
	"time"
)

// travelDateLayout is the canonical wire and map-key format for travel
// dates.  A TravelDate carries no time-of-day component; departure
// clock times live on the Train.
const travelDateLayout = "2006-01-02"

// TravelDate is a calendar day in the train's timetable, stored in its
// canonical "YYYY-MM-DD" form so it can serve directly as a map key in
// the lock table and the inventory.
type TravelDate string

// NewTravelDate truncates t to its UTC calendar day.
func NewTravelDate(t time.Time) TravelDate {
	return TravelDate(t.UTC().Format(travelDateLayout))
}

// ParseTravelDate validates a client-supplied date string.
func ParseTravelDate(s string) (TravelDate, error) {
	t, err := time.Parse(travelDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid travel date %q: %w", s, err)
	}
	return NewTravelDate(t), nil
}

// Day returns the midnight UTC instant of the travel date.  It panics
// only if the TravelDate was constructed without going through
// NewTravelDate or ParseTravelDate.
func (d TravelDate) Day() time.Time {
	t, err := time.Parse(travelDateLayout, string(d))
	if err != nil {
		panic(fmt.Sprintf("malformed travel date %q", d))
	}
	return t
}
