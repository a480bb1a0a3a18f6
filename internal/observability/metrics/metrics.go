package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskboard_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_http_errors_total",
			Help: "Total number of HTTP error responses",
		},
		[]string{"status", "method"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_domain_errors_total",
			Help: "Total number of domain errors by category and code",
		},
		[]string{"category", "code"},
	)

	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_rate_limit_blocked_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"method"},
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_logins_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	SessionTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_session_tokens_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	BoardMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_board_mutations_total",
			Help: "Total number of board mutations by operation",
		},
		[]string{"op"},
	)

	TaskMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_task_mutations_total",
			Help: "Total number of task mutations by operation",
		},
		[]string{"op"},
	)

	StoreSaveDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taskboard_store_save_duration_seconds",
			Help:    "Duration of document store saves in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StoreSaveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_store_save_failures_total",
			Help: "Total number of failed document store saves",
		},
	)

	ActiveEventConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskboard_event_connections_active",
			Help: "Number of active event stream connections",
		},
	)

	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_events_dropped_total",
			Help: "Total number of events dropped due to slow clients",
		},
	)
)
