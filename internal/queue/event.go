// Package queue defines the message payloads exchanged over the
// broker and the publisher/consumer pair for booking notifications.
package queue

// EventQueueName is the durable queue all booking events go to.
const EventQueueName = "booking.events"

// Event kinds carried in BookingEvent.Kind.
const (
	KindStatusChanged = "status_changed"
	KindPromoted      = "waitlist_promoted"
	KindCancelled     = "cancelled"
)

// BookingEvent is published on every notification hook.  It carries
// enough for downstream consumers to log or notify without querying
// the booking store.
type BookingEvent struct {
	Kind         string   `json:"kind"`
	PNR          string   `json:"pnr"`
	UserID       uint64   `json:"user_id"`
	TrainID      string   `json:"train_id"`
	TravelDate   string   `json:"travel_date"`
	CoachType    string   `json:"coach_type"`
	OldStatus    string   `json:"old_status,omitempty"`
	NewStatus    string   `json:"new_status,omitempty"`
	Position     int      `json:"position,omitempty"`
	RefundAmount int64    `json:"refund_amount,omitempty"`
	Passengers   []string `json:"passengers"`
	OccurredAt   string   `json:"occurred_at"`
}
