package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics прометеус-метрики сервиса бронирования
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	EventsProcessed      *prometheus.CounterVec
	ReservationsCreated  prometheus.Counter
	ReservationConflicts prometheus.Counter
	SweepDeleted         prometheus.Counter
}

// New создает и регистрирует метрики в дефолтном регистре
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		EventsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "conversation_events_total",
			Help:        "Conversation events processed, by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),

		ReservationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations successfully committed",
			ConstLabels: labels,
		}),

		ReservationConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_conflicts_total",
			Help:        "Reservation attempts that lost the slot race",
			ConstLabels: labels,
		}),

		SweepDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "expiry_sweep_deleted_total",
			Help:        "Reservations removed by the expiry sweep",
			ConstLabels: labels,
		}),
	}
}
