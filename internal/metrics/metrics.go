package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strikehouse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strikehouse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RentalsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strikehouse_rentals_created_total",
			Help: "Total number of rentals created",
		},
		[]string{"recurring"},
	)

	RentalConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strikehouse_rental_conflicts_total",
			Help: "Total number of rental bookings rejected for slot conflicts",
		},
	)

	RentalCancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strikehouse_rental_cancellations_total",
			Help: "Total number of rental cancellations",
		},
		[]string{"credited"},
	)

	CoachCreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strikehouse_coach_credits_total",
			Help: "Total number of coach credit ledger entries",
		},
		[]string{"reason"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strikehouse_checkins_total",
			Help: "Total number of check-in attempts",
		},
		[]string{"type", "result"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strikehouse_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "strikehouse_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordRentalCreated(recurring bool) {
	label := "false"
	if recurring {
		label = "true"
	}
	RentalsCreatedTotal.WithLabelValues(label).Inc()
}

func RecordRentalConflict() {
	RentalConflictsTotal.Inc()
}

func RecordRentalCancellation(credited bool) {
	label := "false"
	if credited {
		label = "true"
	}
	RentalCancellationsTotal.WithLabelValues(label).Inc()
}

func RecordCoachCredit(reason string) {
	CoachCreditsTotal.WithLabelValues(reason).Inc()
}

func RecordCheckIn(subjectType, result string) {
	CheckInsTotal.WithLabelValues(subjectType, result).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
