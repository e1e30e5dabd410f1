package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the reservation core.
type Metrics struct {
	BookingsCreated    *prometheus.CounterVec
	BookingsConfirmed  prometheus.Counter
	BookingsCancelled  prometheus.Counter
	WaitlistPromotions *prometheus.CounterVec
	LockConflicts      prometheus.Counter
	AllocationTime     prometheus.Histogram
	RefundsIssued      prometheus.Counter
}

// New creates the metric set under the given namespace and registers
// it with the default registry.
func New(namespace string) *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings created, labelled by initial status",
		}, []string{"status"}),
		BookingsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_confirmed_total",
			Help:      "Bookings confirmed after payment",
		}),
		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled",
		}),
		WaitlistPromotions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waitlist_promotions_total",
			Help:      "Promotions run by the waitlist engine, labelled by target status",
		}, []string{"to"}),
		LockConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_lock_conflicts_total",
			Help:      "try_acquire calls that lost the race for a seat lock",
		}),
		AllocationTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "allocation_duration_seconds",
			Help:      "Time spent in a single allocation attempt",
			Buckets:   prometheus.DefBuckets,
		}),
		RefundsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_issued_total",
			Help:      "Refunds computed on cancellation",
		}),
	}
}
