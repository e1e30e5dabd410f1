// Package model defines the domain entities of the reservation core:
// trains, coaches, seats, passengers and bookings, together with the
// closed enumerations used throughout the codebase.  The previous
// iteration of this system passed bare strings around for coach types
// and statuses; every enumeration here is a distinct named type so the
// compiler catches mixed-up arguments.
package model

import "fmt"

// CoachType identifies the class of a coach.  The constants are ordered
// from the most expensive class to the cheapest; the fare package keys
// its per-kilometre rate table on these values.
type CoachType string

const (
	CoachFirstAC       CoachType = "FIRST_AC"
	CoachSecondAC      CoachType = "SECOND_AC"
	CoachThirdAC       CoachType = "THIRD_AC"
	CoachSleeper       CoachType = "SLEEPER"
	CoachACChair       CoachType = "AC_CHAIR"
	CoachChair         CoachType = "CHAIR"
	CoachSecondSeating CoachType = "SECOND_SEATING"
	CoachGeneral       CoachType = "GENERAL"
)

// Valid reports whether ct is one of the known coach types.
func (ct CoachType) Valid() bool {
	switch ct {
	case CoachFirstAC, CoachSecondAC, CoachThirdAC, CoachSleeper,
		CoachACChair, CoachChair, CoachSecondSeating, CoachGeneral:
		return true
	}
	return false
}

// ParseCoachType converts a request string into a CoachType.
func ParseCoachType(s string) (CoachType, error) {
	ct := CoachType(s)
	if !ct.Valid() {
		return "", fmt.Errorf("unknown coach type %q", s)
	}
	return ct, nil
}

// BerthType tags the physical position of a seat within a coach.
// Sleeper and AC coaches use the berth variants; seating coaches use
// BerthSeat for plain forward-facing seats.
type BerthType string

const (
	BerthLower     BerthType = "LOWER"
	BerthMiddle    BerthType = "MIDDLE"
	BerthUpper     BerthType = "UPPER"
	BerthSideLower BerthType = "SIDE_LOWER"
	BerthSideUpper BerthType = "SIDE_UPPER"
	BerthSeat      BerthType = "SEAT"
)

// Valid reports whether bt is one of the known berth types.
func (bt BerthType) Valid() bool {
	switch bt {
	case BerthLower, BerthMiddle, BerthUpper, BerthSideLower, BerthSideUpper, BerthSeat:
		return true
	}
	return false
}

// BookingStatus is the discriminant of a booking's tagged state.  The
// variant-specific data (waitlist position, refund amount, timestamps)
// lives alongside it in BookingState.
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusWaitlisted BookingStatus = "WAITLISTED"
	StatusRAC        BookingStatus = "RAC"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// Gender of a passenger as captured on the reservation form.
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
	GenderOther  Gender = "O"
)
