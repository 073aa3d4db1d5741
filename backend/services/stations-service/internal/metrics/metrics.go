package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records HTTP and station-level metrics.
type Collector struct {
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	authFailures     *prometheus.CounterVec
	stationMutations *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stations_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stations_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stations_auth_failures_total",
			Help: "Rejected credentials by reason.",
		}, []string{"reason"}),
		stationMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stations_mutations_total",
			Help: "Successful station mutations by operation.",
		}, []string{"op"}),
	}

	reg.MustRegister(c.requests, c.requestDuration, c.authFailures, c.stationMutations)
	return c
}

// RecordRequest records a completed HTTP request.
func (c *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordAuthFailure counts a rejected credential.
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// RecordStationMutation counts a successful create, update or delete.
func (c *Collector) RecordStationMutation(op string) {
	c.stationMutations.WithLabelValues(op).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
