package model

// Passenger is one traveller on a booking.  The seat-assignment fields
// are empty until the allocator commits a seat and are cleared again by
// cancellation.  Allocation is all-or-nothing per booking, so a
// passenger's status always mirrors the parent booking's state; there
// is no per-passenger partial confirmation.
//
// Fields:
//  Name       – passenger name as it appears on the PNR.
//  Age        – age in years; must be positive.
//  Gender     – F/M/O.
//  Preference – requested berth type; empty means no preference.
//  CoachID    – assigned coach, set on commit.
//  SeatID     – assigned seat, set on commit.
type Passenger struct {
	Name       string
	Age        int
	Gender     Gender
	Preference BerthType
	CoachID    string
	SeatID     string
}

// ClearAssignment resets the seat-assignment fields after a
// cancellation has reversed the underlying commits.
func (p *Passenger) ClearAssignment() {
	p.CoachID = ""
	p.SeatID = ""
}
