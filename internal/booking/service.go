package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/train-seat-reservation/internal/allocation"
	"github.com/iliyamo/train-seat-reservation/internal/catalog"
	"github.com/iliyamo/train-seat-reservation/internal/fare"
	"github.com/iliyamo/train-seat-reservation/internal/inventory"
	"github.com/iliyamo/train-seat-reservation/internal/model"
	"github.com/iliyamo/train-seat-reservation/internal/notify"
	"github.com/iliyamo/train-seat-reservation/internal/repository"
	"github.com/iliyamo/train-seat-reservation/pkg/metrics"
)

// Config tunes service behaviour.
//
// AssumedFreeSeats reproduces a quirk of the system this one replaces:
// its promotion logic used a hardcoded free-seat constant instead of
// querying live inventory.  Leave it at 0 (the default) to query the
// inventory on every promotion decision; set it positive only to
// emulate the legacy behaviour.  RACQuota is the number of RAC slots
// per train/date/coach-type bucket.
type Config struct {
	AssumedFreeSeats int
	RACQuota         int
}

// Service exposes the caller-facing booking operations and owns the
// lifecycle orchestration around the allocator, the state machine and
// the promotion engine.  All dependencies are explicit; there is no
// ambient global state.
type Service struct {
	log      *zap.Logger
	cat      *catalog.Catalog
	store    repository.BookingStore
	inv      *inventory.Inventory
	alloc    *allocation.Allocator
	notifier notify.Notifier
	metrics  *metrics.Metrics
	cfg      Config

	// promoMu serializes waitlist-position assignment and promotion
	// cascades per process.  Promotion order must be deterministic;
	// a table-wide mutex is the simplest way to keep it that way.
	promoMu sync.Mutex

	// now is swappable in tests for refund-boundary checks.
	now func() time.Time
}

// NewService wires a booking service.  notifier and m may be nil.
func NewService(log *zap.Logger, cat *catalog.Catalog, store repository.BookingStore, inv *inventory.Inventory, alloc *allocation.Allocator, notifier notify.Notifier, m *metrics.Metrics, cfg Config) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if cfg.RACQuota < 0 {
		cfg.RACQuota = 0
	}
	return &Service{
		log:      log,
		cat:      cat,
		store:    store,
		inv:      inv,
		alloc:    alloc,
		notifier: notifier,
		metrics:  m,
		cfg:      cfg,
		now:      time.Now,
	}
}

// CreateRequest is the input to CreateBooking.
type CreateRequest struct {
	UserID      uint64
	TrainID     string
	Date        model.TravelDate
	Source      string
	Destination string
	CoachType   model.CoachType
	Passengers  []model.Passenger
}

// maxPassengersPerBooking matches the reservation form limit.
const maxPassengersPerBooking = 6

// CreateBooking validates the request, prices it, and attempts
// allocation.  On success the booking is created PENDING with its
// seats committed, awaiting payment; on an allocation shortfall it is
// created WAITLISTED with the next queue position for its bucket.
// Allocation never partially succeeds, so there is no third outcome.
func (s *Service) CreateBooking(ctx context.Context, req CreateRequest) (*model.Booking, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	train, err := s.cat.Train(req.TrainID)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", req.TrainID, ErrNotFound)
	}
	if len(train.CoachesOf(req.CoachType)) == 0 {
		return nil, fmt.Errorf("train %s has no %s coaches: %w", req.TrainID, req.CoachType, ErrConflict)
	}
	if !train.HasStation(req.Source) || !train.HasStation(req.Destination) {
		return nil, fmt.Errorf("station not on route of train %s: %w", req.TrainID, ErrValidation)
	}

	distance, err := train.DistanceBetween(req.Source, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	perPassenger, err := fare.For(req.CoachType, distance)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	b := &model.Booking{
		PNR:         NewPNR(),
		UserID:      req.UserID,
		TrainID:     req.TrainID,
		Date:        req.Date,
		Source:      req.Source,
		Destination: req.Destination,
		CoachType:   req.CoachType,
		Passengers:  append([]model.Passenger(nil), req.Passengers...),
		TotalFare:   perPassenger * int64(len(req.Passengers)),
		CreatedAt:   s.now().UTC(),
	}

	res, err := s.alloc.Allocate(req.TrainID, b.Passengers, req.CoachType, req.Date, b.PNR)
	if err != nil {
		return nil, fmt.Errorf("allocation: %v: %w", err, ErrConcurrency)
	}

	if res.Success {
		for _, a := range res.Assignments {
			b.Passengers[a.Passenger].CoachID = a.CoachID
			b.Passengers[a.Passenger].SeatID = a.SeatID
		}
		b.State = model.BookingState{Status: model.StatusPending}
		if err := s.store.Create(ctx, b); err != nil {
			// Undo the commits; a booking that was never stored must
			// not occupy seats.
			for _, a := range res.Assignments {
				s.inv.Reverse(a.SeatID, b.Date)
			}
			return nil, err
		}
		s.countCreated(model.StatusPending)
		s.notifier.StatusChanged(b, "", model.StatusPending)
		s.log.Info("booking created",
			zap.String("pnr", b.PNR), zap.String("train", b.TrainID),
			zap.String("date", string(b.Date)), zap.Int("passengers", len(b.Passengers)))
		return b, nil
	}

	// No seats: queue the booking.  Position assignment and Create
	// happen under promoMu so two racing shortfalls cannot claim the
	// same rank.
	s.promoMu.Lock()
	pos, err := s.nextWaitlistPosition(ctx, req.TrainID, req.Date, req.CoachType)
	if err != nil {
		s.promoMu.Unlock()
		return nil, err
	}
	b.State = model.BookingState{Status: model.StatusWaitlisted, Position: pos}
	if err := s.store.Create(ctx, b); err != nil {
		s.promoMu.Unlock()
		return nil, err
	}
	s.promoMu.Unlock()

	s.countCreated(model.StatusWaitlisted)
	s.notifier.StatusChanged(b, "", model.StatusWaitlisted)
	s.log.Info("booking waitlisted",
		zap.String("pnr", b.PNR), zap.Int("position", pos), zap.String("reason", res.Message))
	return b, nil
}

// ConfirmPayment moves a PENDING booking to CONFIRMED after a payment
// success.  Confirming an already-CONFIRMED booking is an idempotent
// no-op.  Payment failures never reach this method — the booking
// simply stays PENDING and the caller decides what to do with it.
func (s *Service) ConfirmPayment(ctx context.Context, pnr string) (*model.Booking, error) {
	b, err := s.GetBookingByPNR(ctx, pnr)
	if err != nil {
		return nil, err
	}

	b.Lock()
	old := b.State.Status
	next, err := Transition(b.State, Event{Kind: EventConfirm})
	if err != nil {
		b.Unlock()
		return nil, err
	}
	if old == model.StatusConfirmed {
		b.Unlock()
		return b, nil
	}
	b.State = next
	b.ConfirmedAt = s.now().UTC()
	b.Unlock()

	if err := s.store.Update(ctx, b); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.BookingsConfirmed.Inc()
	}
	s.notifier.StatusChanged(b, old, next.Status)
	s.log.Info("booking confirmed", zap.String("pnr", b.PNR))
	return b, nil
}

// CancelBooking cancels the booking behind a PNR, computes the refund,
// reverses any committed seats and runs the promotion cascade over the
// freed capacity.  Re-cancelling an already-cancelled booking is a
// warned no-op.
func (s *Service) CancelBooking(ctx context.Context, pnr string) (*model.Booking, error) {
	b, err := s.GetBookingByPNR(ctx, pnr)
	if err != nil {
		return nil, err
	}
	train, err := s.cat.Train(b.TrainID)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", b.TrainID, ErrNotFound)
	}

	now := s.now().UTC()
	b.Lock()
	old := b.State.Status
	if old == model.StatusCancelled {
		b.Unlock()
		s.log.Warn("booking already cancelled", zap.String("pnr", b.PNR))
		return b, nil
	}

	// Pending bookings never completed payment; Transition forces
	// their refund to zero regardless of what we pass here.
	refund := RefundAmount(b.TotalFare, train.DepartureAt(b.Date), now)
	next, err := Transition(b.State, Event{Kind: EventCancel, Refund: refund, At: now})
	if err != nil {
		b.Unlock()
		return nil, err
	}

	freedSeats := false
	for i := range b.Passengers {
		if b.Passengers[i].SeatID != "" {
			s.inv.Reverse(b.Passengers[i].SeatID, b.Date)
			freedSeats = true
		}
		b.Passengers[i].ClearAssignment()
	}
	b.State = next
	refund = next.RefundAmount
	b.Unlock()

	if err := s.store.Update(ctx, b); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.BookingsCancelled.Inc()
		if refund > 0 {
			s.metrics.RefundsIssued.Inc()
		}
	}
	s.notifier.StatusChanged(b, old, model.StatusCancelled)
	s.notifier.Cancelled(b, refund)
	s.log.Info("booking cancelled",
		zap.String("pnr", b.PNR), zap.String("was", string(old)), zap.Int64("refund", refund))

	if freedSeats || old == model.StatusRAC {
		s.runPromotions(ctx, b.TrainID, b.Date, b.CoachType, old == model.StatusRAC)
	}
	return b, nil
}

// GetBookingByPNR returns the booking behind a PNR.
func (s *Service) GetBookingByPNR(ctx context.Context, pnr string) (*model.Booking, error) {
	b, err := s.store.GetByPNR(ctx, pnr)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	return b, nil
}

// BookingsForUser returns all bookings created by the user, newest
// first.
func (s *Service) BookingsForUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	return s.store.ListByUser(ctx, userID)
}

// nextWaitlistPosition returns one past the highest live position in
// the bucket, across both the waitlist and RAC tiers.  Caller holds
// promoMu.
func (s *Service) nextWaitlistPosition(ctx context.Context, trainID string, date model.TravelDate, ct model.CoachType) (int, error) {
	max := 0
	for _, status := range []model.BookingStatus{model.StatusWaitlisted, model.StatusRAC} {
		list, err := s.store.ListByStatus(ctx, trainID, date, ct, status)
		if err != nil {
			return 0, err
		}
		for _, b := range list {
			if p := b.State.Position; p > max {
				max = p
			}
		}
	}
	return max + 1, nil
}

func (s *Service) countCreated(status model.BookingStatus) {
	if s.metrics != nil {
		s.metrics.BookingsCreated.WithLabelValues(string(status)).Inc()
	}
}

func validateRequest(req CreateRequest) error {
	if req.TrainID == "" {
		return fmt.Errorf("train id is required: %w", ErrValidation)
	}
	if req.Date == "" {
		return fmt.Errorf("travel date is required: %w", ErrValidation)
	}
	if req.Source == "" || req.Destination == "" || req.Source == req.Destination {
		return fmt.Errorf("source and destination must be distinct stations: %w", ErrValidation)
	}
	if !req.CoachType.Valid() {
		return fmt.Errorf("unknown coach type %q: %w", req.CoachType, ErrValidation)
	}
	if len(req.Passengers) == 0 {
		return fmt.Errorf("at least one passenger is required: %w", ErrValidation)
	}
	if len(req.Passengers) > maxPassengersPerBooking {
		return fmt.Errorf("at most %d passengers per booking: %w", maxPassengersPerBooking, ErrValidation)
	}
	for i, p := range req.Passengers {
		if p.Name == "" {
			return fmt.Errorf("passenger %d: name is required: %w", i+1, ErrValidation)
		}
		if p.Age <= 0 {
			return fmt.Errorf("passenger %d: age must be positive: %w", i+1, ErrValidation)
		}
		if p.Preference != "" && !p.Preference.Valid() {
			return fmt.Errorf("passenger %d: unknown berth preference %q: %w", i+1, p.Preference, ErrValidation)
		}
	}
	return nil
}
