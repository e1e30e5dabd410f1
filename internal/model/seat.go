package model

import "fmt"

// Seat describes one physical berth or seat in a coach.  Seats are
// created once when their coach is registered in the catalog and are
// never destroyed; which booking occupies a seat on a given travel date
// is tracked by the inventory, not on the seat itself, so that every
// mutation of the (seat, date) slot goes through one guarded API.
//
// Fields:
//  ID      – globally unique identifier, "<coach id>-<number>".
//  CoachID – coach to which this seat belongs.
//  Number  – 1-based position of the seat within the coach.
//  Berth   – berth/seat type tag used for preference matching.
type Seat struct {
	ID      string
	CoachID string
	Number  int
	Berth   BerthType
}

// Coach owns an ordered list of seats of a single coach type and
// belongs to exactly one train.  Seat order is construction order and
// is load-bearing: the allocator breaks ties by scanning coaches in
// train-registration order and seats in this order.
type Coach struct {
	ID      string
	TrainID string
	Type    CoachType
	Seats   []Seat
}

// NewCoach builds a coach with seatCount seats, assigning berth tags in
// the given cycle (lower, middle, upper, ... for sleeper-style coaches,
// or a single-element BerthSeat cycle for seating coaches).
func NewCoach(id, trainID string, ct CoachType, seatCount int, berthCycle []BerthType) *Coach {
	if len(berthCycle) == 0 {
		berthCycle = []BerthType{BerthSeat}
	}
	c := &Coach{ID: id, TrainID: trainID, Type: ct}
	c.Seats = make([]Seat, 0, seatCount)
	for i := 0; i < seatCount; i++ {
		c.Seats = append(c.Seats, Seat{
			ID:      fmt.Sprintf("%s-%d", id, i+1),
			CoachID: id,
			Number:  i + 1,
			Berth:   berthCycle[i%len(berthCycle)],
		})
	}
	return c
}

// SleeperBerthCycle is the standard berth layout cycle for sleeper and
// AC coaches: bays of six plus two side berths.
var SleeperBerthCycle = []BerthType{
	BerthLower, BerthMiddle, BerthUpper,
	BerthLower, BerthMiddle, BerthUpper,
	BerthSideLower, BerthSideUpper,
}
