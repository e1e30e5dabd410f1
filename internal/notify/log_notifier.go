package notify

import (
	"go.uber.org/zap"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// LogNotifier writes notifications to the structured log.  It is
// always installed so lifecycle events are visible even without a
// broker.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier returns a notifier writing through log.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) StatusChanged(b *model.Booking, old, new model.BookingStatus) {
	n.log.Info("booking status changed",
		zap.String("pnr", b.PNR),
		zap.String("train", b.TrainID),
		zap.String("date", string(b.Date)),
		zap.String("old", string(old)),
		zap.String("new", string(new)),
	)
}

func (n *LogNotifier) WaitlistPromoted(b *model.Booking, newStatus model.BookingStatus) {
	n.log.Info("booking promoted",
		zap.String("pnr", b.PNR),
		zap.String("train", b.TrainID),
		zap.String("date", string(b.Date)),
		zap.String("to", string(newStatus)),
		zap.Int("position", b.State.Position),
	)
}

func (n *LogNotifier) Cancelled(b *model.Booking, refundAmount int64) {
	n.log.Info("booking cancelled",
		zap.String("pnr", b.PNR),
		zap.String("train", b.TrainID),
		zap.String("date", string(b.Date)),
		zap.Int64("refund", refundAmount),
	)
}
