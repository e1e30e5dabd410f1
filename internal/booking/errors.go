package booking

import "errors"

// Sentinel errors for the five failure kinds the service can report.
// Handlers branch on these with errors.Is to pick an HTTP status;
// everything else maps to a 500.
var (
	// ErrValidation covers malformed input: empty passenger names,
	// non-positive ages, unknown stations, zero passengers.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers unknown trains, bookings and PNRs.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers business conflicts such as a train without
	// coaches of the requested type.
	ErrConflict = errors.New("conflict")

	// ErrState marks an illegal state-machine transition.  This is a
	// caller logic bug, not a legitimate business outcome, so it is
	// fail-fast rather than a soft result.
	ErrState = errors.New("illegal state transition")

	// ErrConcurrency marks a lock race lost during allocation after
	// the point where it should have been impossible.
	ErrConcurrency = errors.New("concurrent modification")
)
