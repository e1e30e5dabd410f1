package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/train-seat-reservation/internal/model"
	"github.com/iliyamo/train-seat-reservation/internal/queue"
)

// QueueNotifier publishes booking events to the message broker.
// Publish failures are logged and swallowed; notification delivery is
// best-effort by contract.
type QueueNotifier struct {
	log *zap.Logger
}

// NewQueueNotifier returns a broker-backed notifier.
func NewQueueNotifier(log *zap.Logger) *QueueNotifier {
	return &QueueNotifier{log: log}
}

func (n *QueueNotifier) StatusChanged(b *model.Booking, old, new model.BookingStatus) {
	ev := baseEvent(b)
	ev.Kind = queue.KindStatusChanged
	ev.OldStatus = string(old)
	ev.NewStatus = string(new)
	n.publish(ev)
}

func (n *QueueNotifier) WaitlistPromoted(b *model.Booking, newStatus model.BookingStatus) {
	ev := baseEvent(b)
	ev.Kind = queue.KindPromoted
	ev.NewStatus = string(newStatus)
	ev.Position = b.State.Position
	n.publish(ev)
}

func (n *QueueNotifier) Cancelled(b *model.Booking, refundAmount int64) {
	ev := baseEvent(b)
	ev.Kind = queue.KindCancelled
	ev.RefundAmount = refundAmount
	n.publish(ev)
}

func (n *QueueNotifier) publish(ev queue.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := queue.PublishBookingEvent(ctx, ev); err != nil {
		n.log.Warn("booking event publish failed", zap.String("pnr", ev.PNR), zap.Error(err))
	}
}

func baseEvent(b *model.Booking) queue.BookingEvent {
	names := make([]string, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		names = append(names, p.Name)
	}
	return queue.BookingEvent{
		PNR:        b.PNR,
		UserID:     b.UserID,
		TrainID:    b.TrainID,
		TravelDate: string(b.Date),
		CoachType:  string(b.CoachType),
		Passengers: names,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
