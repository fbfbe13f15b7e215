// Package metrics exports board activity and HTTP traffic as Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cookie4/internal/game"
)

// DefaultNamespace prefixes every collector when no namespace is configured
const DefaultNamespace = "cookie4"

// Metrics holds the collectors registered for one server instance
type Metrics struct {
	placements      *prometheus.CounterVec
	outcomes        *prometheus.CounterVec
	resets          prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg under namespace
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Metrics{
		placements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placements_total",
			Help:      "Placement attempts by team and result",
		}, []string{"team", "result"}),

		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Finished boards by source, state and winning team",
		}, []string{"source", "state", "winner"}),

		resets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Board resets",
		}),

		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *Metrics) Placement(team game.Cell, result string) {
	m.placements.WithLabelValues(team.String(), result).Inc()
}

func (m *Metrics) Outcome(source string, o game.Outcome) {
	winner := ""
	if o.State == game.Won {
		winner = o.Winner.String()
	}
	m.outcomes.WithLabelValues(source, o.State.String(), winner).Inc()
}

func (m *Metrics) Reset() { m.resets.Inc() }

// ObserveRequest records one served request
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

var _ game.Recorder = (*Metrics)(nil)
