package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

func TestTransitionTable(t *testing.T) {
	at := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		from       model.BookingState
		ev         Event
		wantStatus model.BookingStatus
		wantErr    bool
	}{
		{
			name:       "pending confirm",
			from:       model.BookingState{Status: model.StatusPending},
			ev:         Event{Kind: EventConfirm},
			wantStatus: model.StatusConfirmed,
		},
		{
			name:       "pending cancel",
			from:       model.BookingState{Status: model.StatusPending},
			ev:         Event{Kind: EventCancel, Refund: 900, At: at},
			wantStatus: model.StatusCancelled,
		},
		{
			name:    "pending waitlist is invalid",
			from:    model.BookingState{Status: model.StatusPending},
			ev:      Event{Kind: EventWaitlist},
			wantErr: true,
		},
		{
			name:    "pending promote is invalid",
			from:    model.BookingState{Status: model.StatusPending},
			ev:      Event{Kind: EventPromote, FreeSeats: 1},
			wantErr: true,
		},
		{
			name:       "confirmed confirm is idempotent",
			from:       model.BookingState{Status: model.StatusConfirmed},
			ev:         Event{Kind: EventConfirm},
			wantStatus: model.StatusConfirmed,
		},
		{
			name:       "confirmed cancel",
			from:       model.BookingState{Status: model.StatusConfirmed},
			ev:         Event{Kind: EventCancel, Refund: 750, At: at},
			wantStatus: model.StatusCancelled,
		},
		{
			name:    "confirmed waitlist is invalid",
			from:    model.BookingState{Status: model.StatusConfirmed},
			ev:      Event{Kind: EventWaitlist},
			wantErr: true,
		},
		{
			name:    "confirmed promote is invalid",
			from:    model.BookingState{Status: model.StatusConfirmed},
			ev:      Event{Kind: EventPromote, FreeSeats: 1},
			wantErr: true,
		},
		{
			name:       "waitlisted promote with free seats",
			from:       model.BookingState{Status: model.StatusWaitlisted, Position: 1},
			ev:         Event{Kind: EventPromote, FreeSeats: 2},
			wantStatus: model.StatusConfirmed,
		},
		{
			name:       "waitlisted promote without free seats goes RAC",
			from:       model.BookingState{Status: model.StatusWaitlisted, Position: 1},
			ev:         Event{Kind: EventPromote, FreeSeats: 0, Position: 3},
			wantStatus: model.StatusRAC,
		},
		{
			name:       "waitlisted cancel",
			from:       model.BookingState{Status: model.StatusWaitlisted, Position: 2},
			ev:         Event{Kind: EventCancel, Refund: 500, At: at},
			wantStatus: model.StatusCancelled,
		},
		{
			name:    "waitlisted confirm is invalid",
			from:    model.BookingState{Status: model.StatusWaitlisted, Position: 1},
			ev:      Event{Kind: EventConfirm},
			wantErr: true,
		},
		{
			name:       "rac promote",
			from:       model.BookingState{Status: model.StatusRAC, Position: 1},
			ev:         Event{Kind: EventPromote, FreeSeats: 1},
			wantStatus: model.StatusConfirmed,
		},
		{
			name:       "rac cancel",
			from:       model.BookingState{Status: model.StatusRAC, Position: 1},
			ev:         Event{Kind: EventCancel, Refund: 250, At: at},
			wantStatus: model.StatusCancelled,
		},
		{
			name:       "cancelled cancel is a no-op",
			from:       model.BookingState{Status: model.StatusCancelled, RefundAmount: 900, CancelledAt: at},
			ev:         Event{Kind: EventCancel, Refund: 100, At: at.Add(time.Hour)},
			wantStatus: model.StatusCancelled,
		},
		{
			name:    "cancelled confirm is invalid",
			from:    model.BookingState{Status: model.StatusCancelled},
			ev:      Event{Kind: EventConfirm},
			wantErr: true,
		},
		{
			name:    "cancelled promote is invalid",
			from:    model.BookingState{Status: model.StatusCancelled},
			ev:      Event{Kind: EventPromote, FreeSeats: 5},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Transition(tc.from, tc.ev)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got state %+v", next)
				}
				if !errors.Is(err, ErrState) {
					t.Fatalf("expected ErrState, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next.Status != tc.wantStatus {
				t.Fatalf("got status %s want %s", next.Status, tc.wantStatus)
			}
		})
	}
}

func TestTransitionPendingCancelForcesZeroRefund(t *testing.T) {
	at := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	next, err := Transition(model.BookingState{Status: model.StatusPending}, Event{Kind: EventCancel, Refund: 900, At: at})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.RefundAmount != 0 {
		t.Fatalf("pending cancellation must refund nothing, got %d", next.RefundAmount)
	}
}

func TestTransitionCancelledCancelKeepsOriginalRecord(t *testing.T) {
	at := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	orig := model.BookingState{Status: model.StatusCancelled, RefundAmount: 900, CancelledAt: at}
	next, err := Transition(orig, Event{Kind: EventCancel, Refund: 0, At: at.Add(time.Hour)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != orig {
		t.Fatalf("re-cancel must not rewrite the cancellation record: %+v", next)
	}
}

func TestTransitionPromoteCarriesRACPosition(t *testing.T) {
	next, err := Transition(
		model.BookingState{Status: model.StatusWaitlisted, Position: 7},
		Event{Kind: EventPromote, FreeSeats: 0, Position: 2},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Status != model.StatusRAC || next.Position != 2 {
		t.Fatalf("expected RAC position 2, got %+v", next)
	}
}
