// Package notify defines the notification hooks the reservation core
// fires on booking lifecycle events.  Hooks are fire-and-forget and
// synchronous: the core never consumes a return value, and a failing
// notifier must never fail the booking operation that triggered it.
package notify

import (
	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// Notifier receives booking lifecycle notifications.
type Notifier interface {
	// StatusChanged fires on every state transition, including
	// creation (old status is empty on creation).
	StatusChanged(b *model.Booking, old, new model.BookingStatus)

	// WaitlistPromoted fires when the promotion engine moves a
	// booking up a tier.
	WaitlistPromoted(b *model.Booking, newStatus model.BookingStatus)

	// Cancelled fires after a cancellation with the refund granted.
	Cancelled(b *model.Booking, refundAmount int64)
}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

func (m Multi) StatusChanged(b *model.Booking, old, new model.BookingStatus) {
	for _, n := range m {
		n.StatusChanged(b, old, new)
	}
}

func (m Multi) WaitlistPromoted(b *model.Booking, newStatus model.BookingStatus) {
	for _, n := range m {
		n.WaitlistPromoted(b, newStatus)
	}
}

func (m Multi) Cancelled(b *model.Booking, refundAmount int64) {
	for _, n := range m {
		n.Cancelled(b, refundAmount)
	}
}

// Nop is the notifier used when nothing is configured.
type Nop struct{}

func (Nop) StatusChanged(*model.Booking, model.BookingStatus, model.BookingStatus) {}
func (Nop) WaitlistPromoted(*model.Booking, model.BookingStatus)                   {}
func (Nop) Cancelled(*model.Booking, int64)                                        {}
