// Package metrics owns the Prometheus registry of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric. A nil *Collector is valid and records nothing.
type Collector struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec // method, route, status
	HTTPDuration *prometheus.HistogramVec

	RouteEstimates  *prometheus.CounterVec // objective, source=routing|fallback
	RoutingDuration prometheus.Histogram
	Emissions       *prometheus.CounterVec // mode
	FavoriteChanges *prometheus.CounterVec // action=added|removed
	PersistFailures *prometheus.CounterVec // table

	ArrivalsIngested prometheus.Counter
	NATSPublished    prometheus.Counter
	NATSPublishErrs  prometheus.Counter
	NATSConnected    prometheus.Gauge
}

// NewCollector creates and registers every metric on a private registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobility_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mobility_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RouteEstimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobility_route_estimates_total",
			Help: "Route estimates by objective and distance source.",
		}, []string{"objective", "source"}),
		RoutingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mobility_routing_duration_seconds",
			Help:    "Time spent in the routing collaborator.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		Emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobility_emission_calculations_total",
			Help: "Emission calculations by mode.",
		}, []string{"mode"}),
		FavoriteChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobility_favorite_changes_total",
			Help: "Favorite line membership changes.",
		}, []string{"action"}),
		PersistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobility_persist_failures_total",
			Help: "History writes that failed after a successful computation.",
		}, []string{"table"}),
		ArrivalsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobility_live_arrivals_ingested_total",
			Help: "Live arrivals received from the feed.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobility_nats_published_total",
			Help: "Arrival alerts published to NATS.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobility_nats_publish_errors_total",
			Help: "Arrival alert publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mobility_nats_connected",
			Help: "1 if the NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests, c.HTTPDuration,
		c.RouteEstimates, c.RoutingDuration, c.Emissions, c.FavoriteChanges, c.PersistFailures,
		c.ArrivalsIngested, c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
	)
	return c
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) ObserveEstimate(objective string, fallback bool, routing time.Duration) {
	if c == nil {
		return
	}
	source := "routing"
	if fallback {
		source = "fallback"
	}
	c.RouteEstimates.WithLabelValues(objective, source).Inc()
	c.RoutingDuration.Observe(routing.Seconds())
}

func (c *Collector) EmissionInc(mode string) {
	if c == nil {
		return
	}
	c.Emissions.WithLabelValues(mode).Inc()
}

func (c *Collector) FavoriteChanged(favorited bool) {
	if c == nil {
		return
	}
	action := "removed"
	if favorited {
		action = "added"
	}
	c.FavoriteChanges.WithLabelValues(action).Inc()
}

func (c *Collector) PersistFailed(table string) {
	if c == nil {
		return
	}
	c.PersistFailures.WithLabelValues(table).Inc()
}

func (c *Collector) ArrivalsIngestedAdd(n int) {
	if c == nil {
		return
	}
	c.ArrivalsIngested.Add(float64(n))
}

func (c *Collector) NATSPublishedInc() {
	if c == nil {
		return
	}
	c.NATSPublished.Inc()
}

func (c *Collector) NATSPublishErrInc() {
	if c == nil {
		return
	}
	c.NATSPublishErrs.Inc()
}

func (c *Collector) NATSSetConnected(connected bool) {
	if c == nil {
		return
	}
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}
