package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// MemoryStore is the default BookingStore: a mutex-guarded map.  The
// live seat map and lock table are in-memory regardless of the store
// chosen, so an in-memory booking store loses nothing that the rest of
// the system would have kept.
type MemoryStore struct {
	mu       sync.RWMutex
	byPNR    map[string]*model.Booking
	userPNRs map[uint64][]string // insertion order per user
}

// NewMemoryStore returns an empty in-memory booking store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byPNR:    make(map[string]*model.Booking),
		userPNRs: make(map[uint64][]string),
	}
}

// Create stores a new booking.
func (s *MemoryStore) Create(ctx context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byPNR[b.PNR]; ok {
		return fmt.Errorf("pnr %s: %w", b.PNR, ErrDuplicatePNR)
	}
	s.byPNR[b.PNR] = b
	s.userPNRs[b.UserID] = append(s.userPNRs[b.UserID], b.PNR)
	return nil
}

// Update is a presence check only: the store hands out pointers, so
// mutations made under the booking mutex are already visible.  SQL
// stores do real work here; keeping the call in the write path keeps
// the two interchangeable.
func (s *MemoryStore) Update(ctx context.Context, b *model.Booking) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byPNR[b.PNR]; !ok {
		return fmt.Errorf("pnr %s: %w", b.PNR, ErrBookingNotFound)
	}
	return nil
}

// GetByPNR returns the booking with the given PNR.
func (s *MemoryStore) GetByPNR(ctx context.Context, pnr string) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byPNR[pnr]
	if !ok {
		return nil, fmt.Errorf("pnr %s: %w", pnr, ErrBookingNotFound)
	}
	return b, nil
}

// ListByUser returns the user's bookings, newest first.
func (s *MemoryStore) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pnrs := s.userPNRs[userID]
	out := make([]*model.Booking, 0, len(pnrs))
	for i := len(pnrs) - 1; i >= 0; i-- {
		out = append(out, s.byPNR[pnrs[i]])
	}
	return out, nil
}

// ListByStatus returns bucket bookings in the given status, ascending
// by queue position.
func (s *MemoryStore) ListByStatus(ctx context.Context, trainID string, date model.TravelDate, ct model.CoachType, status model.BookingStatus) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type ranked struct {
		b   *model.Booking
		pos int
	}
	var hits []ranked
	for _, b := range s.byPNR {
		if b.TrainID != trainID || b.Date != date || b.CoachType != ct {
			continue
		}
		// Snapshot status and position under the booking mutex so a
		// concurrent transition cannot be observed half-written.
		b.Lock()
		st, pos := b.State.Status, b.State.Position
		b.Unlock()
		if st == status {
			hits = append(hits, ranked{b: b, pos: pos})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]*model.Booking, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.b)
	}
	return out, nil
}
