package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bloodbank"

var (
	TotalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP response duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	BloodRequestsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "blood_requests_created_total",
			Help:      "Blood requests created by hospitals",
		},
		[]string{"blood_type", "urgency"},
	)

	NotificationFanout = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "notification_fanout_size",
			Help:      "Donors notified per blood request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	DonorResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "donor_responses_total",
			Help:      "Donor responses by outcome",
		},
		[]string{"outcome"},
	)

	DonationsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "donations_recorded_total",
			Help:      "Donations recorded",
		},
	)

	DeliveryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "delivery_failures_total",
			Help:      "Failed side-channel notification deliveries",
		},
		[]string{"channel"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			TotalRequests,
			RequestDuration,
			BloodRequestsCreated,
			NotificationFanout,
			DonorResponses,
			DonationsRecorded,
			DeliveryFailures,
		)
	})
}
