// Package metrics holds the Prometheus collectors for the clinic queue.
// Every Collector owns its own registry so tests can build as many as they
// need.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinic"

// Collector handles Prometheus metrics collection
type Collector struct {
	registry *prometheus.Registry

	tokensIssued         prometheus.Counter
	queueAdvances        *prometheus.CounterVec
	queueWaiting         prometheus.Gauge
	appointmentsBooked   prometheus.Counter
	appointmentsApproved *prometheus.CounterVec
	backups              *prometheus.CounterVec
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Total number of queue tokens issued",
		}),
		queueAdvances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_advances_total",
			Help:      "Total number of advance calls, by whether the queue moved",
		}, []string{"moved"}),
		queueWaiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_waiting",
			Help:      "Issued tokens not yet called",
		}),
		appointmentsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_booked_total",
			Help:      "Total number of appointments booked",
		}),
		appointmentsApproved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_approved_total",
			Help:      "Total number of approve calls, by whether an appointment matched",
		}, []string{"matched"}),
		backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Total number of collection snapshots, by status",
		}, []string{"status"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status_code"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.tokensIssued,
		c.queueAdvances,
		c.queueWaiting,
		c.appointmentsBooked,
		c.appointmentsApproved,
		c.backups,
		c.httpRequestsTotal,
		c.httpRequestDuration,
	)
	return c
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns the Prometheus exposition handler
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// The Record methods accept a nil receiver so services can run without metrics.

func (c *Collector) RecordTokenIssued(waiting int) {
	if c == nil {
		return
	}
	c.tokensIssued.Inc()
	c.queueWaiting.Set(float64(waiting))
}

func (c *Collector) RecordAdvance(moved bool, waiting int) {
	if c == nil {
		return
	}
	c.queueAdvances.WithLabelValues(strconv.FormatBool(moved)).Inc()
	c.queueWaiting.Set(float64(waiting))
}

func (c *Collector) SetWaiting(waiting int) {
	if c == nil {
		return
	}
	c.queueWaiting.Set(float64(waiting))
}

func (c *Collector) RecordBooked() {
	if c == nil {
		return
	}
	c.appointmentsBooked.Inc()
}

func (c *Collector) RecordApproved(matched bool) {
	if c == nil {
		return
	}
	c.appointmentsApproved.WithLabelValues(strconv.FormatBool(matched)).Inc()
}

func (c *Collector) RecordBackup(err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.backups.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records HTTP request metrics
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
