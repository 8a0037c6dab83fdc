package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	StatusUpdates   *prometheus.CounterVec
	Searches        prometheus.Counter
	FeedSubscribers prometheus.Gauge
	FeedDropped     prometheus.Counter
}

// New creates and registers all Prometheus metrics on a dedicated registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		StatusUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "candidate_status_updates_total",
			Help: "Total number of candidate status updates, by target status",
		}, []string{"status"}),
		Searches: factory.NewCounter(prometheus.CounterOpts{
			Name: "candidate_searches_total",
			Help: "Total number of candidate searches served",
		}),
		FeedSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "candidate_feed_subscribers",
			Help: "Number of clients currently subscribed to the status feed",
		}),
		FeedDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "candidate_feed_dropped_events_total",
			Help: "Status events dropped because a subscriber buffer was full",
		}),
	}
}

// IncrementStatusUpdates records a status change to the given status
func (m *Metrics) IncrementStatusUpdates(status string) {
	if m == nil {
		return
	}
	m.StatusUpdates.WithLabelValues(status).Inc()
}

// IncrementSearches increments the search counter by 1
func (m *Metrics) IncrementSearches() {
	if m == nil {
		return
	}
	m.Searches.Inc()
}

// SubscriberAdded increments the active subscriber gauge
func (m *Metrics) SubscriberAdded() {
	if m == nil {
		return
	}
	m.FeedSubscribers.Inc()
}

// SubscriberRemoved decrements the active subscriber gauge
func (m *Metrics) SubscriberRemoved() {
	if m == nil {
		return
	}
	m.FeedSubscribers.Dec()
}

// IncrementDropped counts an event that could not be delivered
func (m *Metrics) IncrementDropped() {
	if m == nil {
		return
	}
	m.FeedDropped.Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
