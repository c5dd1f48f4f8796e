package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mitiledger"

// Metrics holds all Prometheus metrics
type Metrics struct {
	factory promauto.Factory

	// Command metrics
	CommandsProcessed *prometheus.CounterVec
	DuplicateMessages prometheus.Counter

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	StoreErrors     *prometheus.CounterVec
}

// New creates all metrics and registers them with the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics and registers them with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		factory: factory,

		CommandsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_processed_total",
				Help:      "Chat commands handled, by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		DuplicateMessages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_messages_total",
			Help:      "Inbound messages dropped as redeliveries",
		}),

		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Store operations by store and operation",
			},
			[]string{"store", "operation"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Store operation duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"store", "operation"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Failed store operations by store and operation",
			},
			[]string{"store", "operation"},
		),
	}
}

// ObserveCommand counts a handled command.
func (m *Metrics) ObserveCommand(command, outcome string) {
	if command == "" {
		command = "unknown"
	}
	m.CommandsProcessed.WithLabelValues(command, outcome).Inc()
}

// RegisterQueueDepth exposes the dispatcher backlog as a gauge.
func (m *Metrics) RegisterQueueDepth(depth func() int) {
	m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dispatch_queue_depth",
		Help:      "Inbound messages waiting for the dispatcher",
	}, func() float64 {
		return float64(depth())
	})
}
