package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	CommandsProcessed *prometheus.CounterVec
	CommandDuration   prometheus.Histogram
	EmailsSent        *prometheus.CounterVec
	BookingsCommitted prometheus.Counter
	LostItemChanges   *prometheus.CounterVec
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terminal_commands_total",
			Help:      "The total number of terminal commands processed",
		}, []string{"verb"}),
		CommandDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "terminal_command_duration_seconds",
			Help:      "Time taken to run a terminal command synchronously",
			Buckets:   prometheus.DefBuckets,
		}),
		EmailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "The total number of email send attempts by outcome",
		}, []string{"outcome"}),
		BookingsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_committed_total",
			Help:      "The total number of committed reservations",
		}),
		LostItemChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lost_item_changes_total",
			Help:      "The total number of lost item actions",
		}, []string{"action"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// ObserveCommand records one processed command
func (m *Metrics) ObserveCommand(verb string, took time.Duration) {
	if m == nil {
		return
	}
	m.CommandsProcessed.WithLabelValues(verb).Inc()
	m.CommandDuration.Observe(took.Seconds())
}

// EmailOutcome counts one email send outcome ("sent", "failed")
func (m *Metrics) EmailOutcome(outcome string) {
	if m == nil {
		return
	}
	m.EmailsSent.WithLabelValues(outcome).Inc()
}

// BookingCommitted counts one committed reservation
func (m *Metrics) BookingCommitted() {
	if m == nil {
		return
	}
	m.BookingsCommitted.Inc()
}

// LostItemAction counts a lost & found action
func (m *Metrics) LostItemAction(action string) {
	if m == nil {
		return
	}
	m.LostItemChanges.WithLabelValues(action).Inc()
}

// Error counts an error for operation
func (m *Metrics) Error(operation string) {
	if m == nil {
		return
	}
	m.ErrorsCount.WithLabelValues(operation).Inc()
}
