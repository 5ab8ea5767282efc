package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several instances can coexist in tests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ordersRecorded      prometheus.Counter
	orderValue          prometheus.Histogram
	transitions         *prometheus.CounterVec
	rejectedTransitions *prometheus.CounterVec
	menuChanges         *prometheus.CounterVec
	storageFailures     *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ordersRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acai_orders_recorded_total",
			Help: "Orders recorded at the counter",
		}),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "acai_order_total_value",
			Help:    "Total price of recorded orders",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acai_order_transitions_total",
				Help: "Order status transitions applied",
			},
			[]string{"from", "to"},
		),
		rejectedTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acai_order_transitions_rejected_total",
				Help: "Order status transitions rejected as illegal",
			},
			[]string{"action"},
		),
		menuChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acai_menu_item_changes_total",
				Help: "Menu item writes by operation",
			},
			[]string{"op"},
		),
		storageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acai_storage_failures_total",
				Help: "Blob store failures by kind (read, write)",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		m.ordersRecorded,
		m.orderValue,
		m.transitions,
		m.rejectedTransitions,
		m.menuChanges,
		m.storageFailures,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OrderRecorded(total float64) {
	if m == nil {
		return
	}
	m.ordersRecorded.Inc()
	m.orderValue.Observe(total)
}

func (m *Metrics) Transition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) TransitionRejected(action string) {
	if m == nil {
		return
	}
	m.rejectedTransitions.WithLabelValues(action).Inc()
}

func (m *Metrics) MenuChange(op string) {
	if m == nil {
		return
	}
	m.menuChanges.WithLabelValues(op).Inc()
}

func (m *Metrics) StorageFailure(kind string) {
	if m == nil {
		return
	}
	m.storageFailures.WithLabelValues(kind).Inc()
}
