// Package booking implements the booking lifecycle: the state
// machine, refund schedule, waitlist promotion engine and the
// caller-facing service operations.
package booking

import (
	"fmt"
	"time"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// EventKind enumerates the state-machine events.
type EventKind string

const (
	EventConfirm  EventKind = "confirm"
	EventCancel   EventKind = "cancel"
	EventWaitlist EventKind = "add_to_waitlist"
	EventPromote  EventKind = "promote"
)

// Event carries a state-machine event and its variant data.  The
// transition function is pure, so anything it needs from the outside
// world — the live free-seat count, the computed refund, the clock —
// arrives here.
//
// Fields:
//  Kind      – which event.
//  Refund    – refund granted; used by EventCancel.
//  At        – event instant; used by EventCancel.
//  FreeSeats – live available-seat count queried by the caller just
//              before promoting; used by EventPromote to choose
//              between CONFIRMED and RAC.
//  Position  – RAC queue position to assign when a promotion lands in
//              RAC rather than CONFIRMED.
type Event struct {
	Kind      EventKind
	Refund    int64
	At        time.Time
	FreeSeats int
	Position  int
}

// Transition applies ev to cur and returns the next state.  It is an
// exhaustive match over (status, event); it never mutates cur.  Two
// combinations are deliberate no-ops returning cur unchanged:
// confirming a CONFIRMED booking, and cancelling a CANCELLED one (the
// caller logs a warning for the latter).  Every other combination not
// in the transition table fails with ErrState.
func Transition(cur model.BookingState, ev Event) (model.BookingState, error) {
	switch cur.Status {
	case model.StatusPending:
		switch ev.Kind {
		case EventConfirm:
			return model.BookingState{Status: model.StatusConfirmed}, nil
		case EventCancel:
			// Payment never completed; the refund is always zero no
			// matter what the caller computed.
			return model.BookingState{Status: model.StatusCancelled, RefundAmount: 0, CancelledAt: ev.At}, nil
		case EventWaitlist:
			return cur, fmt.Errorf("pending booking cannot be waitlisted, payment must resolve first: %w", ErrState)
		}

	case model.StatusConfirmed:
		switch ev.Kind {
		case EventConfirm:
			return cur, nil // idempotent
		case EventCancel:
			return model.BookingState{Status: model.StatusCancelled, RefundAmount: ev.Refund, CancelledAt: ev.At}, nil
		}

	case model.StatusWaitlisted:
		switch ev.Kind {
		case EventCancel:
			return model.BookingState{Status: model.StatusCancelled, RefundAmount: ev.Refund, CancelledAt: ev.At}, nil
		case EventPromote:
			if ev.FreeSeats >= 1 {
				return model.BookingState{Status: model.StatusConfirmed}, nil
			}
			return model.BookingState{Status: model.StatusRAC, Position: ev.Position}, nil
		}

	case model.StatusRAC:
		switch ev.Kind {
		case EventCancel:
			return model.BookingState{Status: model.StatusCancelled, RefundAmount: ev.Refund, CancelledAt: ev.At}, nil
		case EventPromote:
			return model.BookingState{Status: model.StatusConfirmed}, nil
		}

	case model.StatusCancelled:
		if ev.Kind == EventCancel {
			return cur, nil // no-op; caller warns
		}
	}
	return cur, fmt.Errorf("event %s on %s booking: %w", ev.Kind, cur.Status, ErrState)
}
