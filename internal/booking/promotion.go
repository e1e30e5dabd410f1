package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// runPromotions is the waitlist promotion engine.  It runs after any
// cancellation that freed capacity in a (train, date, coach type)
// bucket and promotes queued bookings in strictly ascending position
// order:
//
//  1. RAC bookings sit ahead of the waitlist; freed full seats go to
//     them first (RAC -> CONFIRMED, committing real seats).
//  2. Waitlisted bookings promote to CONFIRMED while enough seats
//     remain for their whole passenger list — promotion is never a
//     bare state flip, each one commits physical seats through the
//     allocator.
//  3. RAC slots vacated in this run (by a RAC cancellation or by RAC
//     promotions in step 1) are backfilled from the head of the
//     waitlist (WAITLISTED -> RAC).
//
// The head of the queue is never skipped: if the first booking in
// line cannot be seated, later ones must wait behind it.
func (s *Service) runPromotions(ctx context.Context, trainID string, date model.TravelDate, ct model.CoachType, racSlotFreed bool) {
	s.promoMu.Lock()
	defer s.promoMu.Unlock()

	racSlots := 0
	if racSlotFreed {
		racSlots = 1
	}

	racs, err := s.store.ListByStatus(ctx, trainID, date, ct, model.StatusRAC)
	if err != nil {
		s.log.Error("promotion: listing RAC bookings failed", zap.Error(err))
		return
	}
	for _, b := range racs {
		free, err := s.freeSeats(trainID, ct, date)
		if err != nil || free < len(b.Passengers) {
			break
		}
		if !s.promoteWithSeats(ctx, b, free) {
			break
		}
		racSlots++
	}

	waitlist, err := s.store.ListByStatus(ctx, trainID, date, ct, model.StatusWaitlisted)
	if err != nil {
		s.log.Error("promotion: listing waitlist failed", zap.Error(err))
		return
	}
	for _, b := range waitlist {
		free, err := s.freeSeats(trainID, ct, date)
		if err != nil {
			break
		}
		switch {
		case free >= len(b.Passengers):
			if !s.promoteWithSeats(ctx, b, free) {
				return
			}
		case racSlots > 0 && s.cfg.RACQuota > 0:
			if !s.promoteToRAC(ctx, b) {
				return
			}
			racSlots--
		default:
			return
		}
	}
}

// promoteWithSeats moves one queued booking to CONFIRMED, committing a
// physical seat per passenger.  Returns false when the queue should
// stop advancing (allocation raced away or the transition failed).
func (s *Service) promoteWithSeats(ctx context.Context, b *model.Booking, free int) bool {
	b.Lock()
	cur := b.State
	if cur.Status != model.StatusWaitlisted && cur.Status != model.StatusRAC {
		// Cancelled between listing and locking; skip it and keep
		// the queue moving.
		b.Unlock()
		return true
	}
	res, err := s.alloc.Allocate(b.TrainID, b.Passengers, b.CoachType, b.Date, b.PNR)
	if err != nil || !res.Success {
		b.Unlock()
		return false
	}
	next, err := Transition(cur, Event{Kind: EventPromote, FreeSeats: free})
	if err != nil {
		for _, a := range res.Assignments {
			s.inv.Reverse(a.SeatID, b.Date)
		}
		b.Unlock()
		s.log.Error("promotion transition rejected", zap.String("pnr", b.PNR), zap.Error(err))
		return false
	}
	for _, a := range res.Assignments {
		b.Passengers[a.Passenger].CoachID = a.CoachID
		b.Passengers[a.Passenger].SeatID = a.SeatID
	}
	b.State = next
	b.Unlock()

	if err := s.store.Update(ctx, b); err != nil {
		s.log.Error("promotion: store update failed", zap.String("pnr", b.PNR), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.WaitlistPromotions.WithLabelValues(string(next.Status)).Inc()
	}
	s.notifier.WaitlistPromoted(b, next.Status)
	s.notifier.StatusChanged(b, cur.Status, next.Status)
	s.log.Info("booking promoted",
		zap.String("pnr", b.PNR), zap.String("from", string(cur.Status)), zap.String("to", string(next.Status)))
	return true
}

// promoteToRAC moves the head of the waitlist into a vacated RAC slot.
// No seats are committed; RAC shares berth capacity by definition.
func (s *Service) promoteToRAC(ctx context.Context, b *model.Booking) bool {
	pos, err := s.nextRACPosition(ctx, b.TrainID, b.Date, b.CoachType)
	if err != nil {
		return false
	}

	b.Lock()
	cur := b.State
	if cur.Status != model.StatusWaitlisted {
		b.Unlock()
		return true
	}
	next, err := Transition(cur, Event{Kind: EventPromote, FreeSeats: 0, Position: pos})
	if err != nil {
		b.Unlock()
		s.log.Error("RAC promotion rejected", zap.String("pnr", b.PNR), zap.Error(err))
		return false
	}
	b.State = next
	b.Unlock()

	if err := s.store.Update(ctx, b); err != nil {
		s.log.Error("promotion: store update failed", zap.String("pnr", b.PNR), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.WaitlistPromotions.WithLabelValues(string(model.StatusRAC)).Inc()
	}
	s.notifier.WaitlistPromoted(b, model.StatusRAC)
	s.notifier.StatusChanged(b, cur.Status, model.StatusRAC)
	s.log.Info("booking promoted to RAC", zap.String("pnr", b.PNR), zap.Int("position", pos))
	return true
}

// freeSeats returns the free-seat count the promotion engine should
// act on.  The default is a live inventory query; AssumedFreeSeats
// short-circuits it to emulate the legacy hardcoded constant (see
// Config).
func (s *Service) freeSeats(trainID string, ct model.CoachType, date model.TravelDate) (int, error) {
	if s.cfg.AssumedFreeSeats > 0 {
		return s.cfg.AssumedFreeSeats, nil
	}
	return s.inv.AvailableCount(trainID, ct, date)
}

// nextRACPosition returns one past the highest live RAC position in
// the bucket.  Caller holds promoMu.
func (s *Service) nextRACPosition(ctx context.Context, trainID string, date model.TravelDate, ct model.CoachType) (int, error) {
	list, err := s.store.ListByStatus(ctx, trainID, date, ct, model.StatusRAC)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, b := range list {
		if p := b.State.Position; p > max {
			max = p
		}
	}
	return max + 1, nil
}
