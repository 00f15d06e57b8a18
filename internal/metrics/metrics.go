package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for mutation counters.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Metrics holds the collectors of one process. A nil *Metrics records
// nothing.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	unread    prometheus.Gauge
	urgent    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medinbox_mutations_total",
			Help: "Conversation mutations by operation and outcome",
		}, []string{"op", "outcome"}),
		unread: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "medinbox_unread_messages",
			Help: "Total unread messages at the last stats computation",
		}),
		urgent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "medinbox_urgent_conversations",
			Help: "Urgent conversations at the last stats computation",
		}),
	}
	m.registry.MustRegister(m.mutations, m.unread, m.urgent)
	return m
}

func (m *Metrics) Mutation(op, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) InboxStats(unread, urgent int) {
	if m == nil {
		return
	}
	m.unread.Set(float64(unread))
	m.urgent.Set(float64(urgent))
}

// Handler returns an http.Handler for Prometheus scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
