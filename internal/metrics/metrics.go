// Package metrics collects prometheus metrics for request handling and
// calls to the competitions service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector is the interface the request consumer and adapters record into.
type MetricsCollector interface {
	RecordRequest(eventType, code string, duration time.Duration)
	RecordUpstreamCall(call, outcome string)
}

// Collector is the prometheus-backed MetricsCollector.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	upstreamCalls   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "users_requests_total",
			Help: "Handled inbound requests by type and result code.",
		}, []string{"type", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "users_request_duration_seconds",
			Help:    "Inbound request handling latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "users_upstream_calls_total",
			Help: "Calls to the competitions service by call and outcome.",
		}, []string{"call", "outcome"}),
	}

	reg.MustRegister(c.requests, c.requestDuration, c.upstreamCalls)
	return c
}

// RecordRequest counts one handled request and observes its latency.
func (c *Collector) RecordRequest(eventType, code string, duration time.Duration) {
	c.requests.WithLabelValues(eventType, code).Inc()
	c.requestDuration.WithLabelValues(eventType).Observe(duration.Seconds())
}

// RecordUpstreamCall counts one call to the competitions service.
func (c *Collector) RecordUpstreamCall(call, outcome string) {
	c.upstreamCalls.WithLabelValues(call, outcome).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, string, time.Duration) {}
func (Nop) RecordUpstreamCall(string, string)           {}
