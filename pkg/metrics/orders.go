package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records counters for the order lifecycle.
type OrderMetrics struct {
	created     prometheus.Counter
	stockDenied *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully created.",
	})
	stockDenied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_stock_denied_total",
		Help: "Order attempts denied for lack of stock.",
	}, []string{"product"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_status_transitions_total",
		Help: "Order status transitions by target status.",
	}, []string{"status"})
	reg.MustRegister(created, stockDenied, transitions)
	return &OrderMetrics{
		created:     created,
		stockDenied: stockDenied,
		transitions: transitions,
	}
}

// IncCreated increments the created-orders counter.
func (m *OrderMetrics) IncCreated() {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
}

// IncStockDenied increments the denied counter for the named product.
func (m *OrderMetrics) IncStockDenied(product string) {
	if m == nil || m.stockDenied == nil {
		return
	}
	m.stockDenied.WithLabelValues(normalizeLabel(product)).Inc()
}

// IncTransition increments the transition counter for the target status.
func (m *OrderMetrics) IncTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
