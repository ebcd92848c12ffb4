package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mytheresa/storefront/session"
)

const namespace = "storefront"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer, service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// SessionMetrics counts what shoppers do with their sessions.
type SessionMetrics struct {
	Outcomes       *prometheus.CounterVec
	Checkouts      prometheus.Counter
	CheckoutAmount prometheus.Counter
	CheckoutItems  prometheus.Counter
	Expired        prometheus.Counter
}

func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	m := &SessionMetrics{
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "outcomes_total",
			Help:      "Session transitions by outcome.",
		}, []string{"outcome"}),
		Checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "checkouts_total",
			Help:      "Completed checkouts.",
		}),
		CheckoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "checkout_amount_total",
			Help:      "Sum of completed checkout totals.",
		}),
		CheckoutItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "checkout_items_total",
			Help:      "Items sold through completed checkouts.",
		}),
		Expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "expired_total",
			Help:      "Sessions dropped after going idle.",
		}),
	}
	for _, o := range session.Outcomes() {
		m.Outcomes.WithLabelValues(o.String())
	}

	reg.MustRegister(m.Outcomes, m.Checkouts, m.CheckoutAmount, m.CheckoutItems, m.Expired)
	return m
}

func (m *SessionMetrics) RecordOutcome(o session.Outcome) {
	m.Outcomes.WithLabelValues(o.String()).Inc()
}

func (m *SessionMetrics) RecordCheckout(r session.Receipt) {
	m.Checkouts.Inc()
	m.CheckoutAmount.Add(r.Total.InexactFloat64())
	m.CheckoutItems.Add(float64(r.ItemCount))
}

func (m *SessionMetrics) RecordExpired(n int) {
	m.Expired.Add(float64(n))
}

// RegisterActiveSessions exposes the live session count, read on scrape.
func RegisterActiveSessions(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "active",
		Help:      "Sessions currently held in memory.",
	}, func() float64 { return float64(count()) }))
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
