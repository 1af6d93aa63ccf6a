// Package metrics exposes reporting counters and latencies to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "posreport"

// Report result labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Collector records what the reporting services do.
type Collector interface {
	ObserveReport(report string, duration time.Duration, err error)
	RecordCacheHit(report string)
	RecordCacheMiss(report string)
	RecordTransactions(source string, count int)
	SetDatasets(count int)
}

// NoopCollector discards every measurement.
type NoopCollector struct{}

func (NoopCollector) ObserveReport(string, time.Duration, error) {}
func (NoopCollector) RecordCacheHit(string)                      {}
func (NoopCollector) RecordCacheMiss(string)                     {}
func (NoopCollector) RecordTransactions(string, int)             {}
func (NoopCollector) SetDatasets(int)                            {}

// PrometheusCollector keeps its own registry so tests and multiple
// servers in one process never collide on the default one.
type PrometheusCollector struct {
	registry *prometheus.Registry

	reportDuration *prometheus.HistogramVec
	reportsTotal   *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	transactions   *prometheus.CounterVec
	datasets       prometheus.Gauge
}

// NewPrometheusCollector registers all report metrics on a fresh registry.
func NewPrometheusCollector() *PrometheusCollector {
	c := &PrometheusCollector{
		registry: prometheus.NewRegistry(),
		reportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Time spent computing a report.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_total",
				Help:      "Reports computed, by outcome.",
			},
			[]string{"report", "result"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_cache_lookups_total",
				Help:      "Report cache lookups, by outcome.",
			},
			[]string{"report", "outcome"},
		),
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_loaded_total",
				Help:      "Transactions loaded into datasets, by source.",
			},
			[]string{"source"},
		),
		datasets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "datasets",
			Help:      "Datasets currently held in memory.",
		}),
	}

	c.registry.MustRegister(
		c.reportDuration,
		c.reportsTotal,
		c.cacheLookups,
		c.transactions,
		c.datasets,
	)
	return c
}

func (c *PrometheusCollector) ObserveReport(report string, duration time.Duration, err error) {
	c.reportDuration.WithLabelValues(report).Observe(duration.Seconds())
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	c.reportsTotal.WithLabelValues(report, result).Inc()
}

func (c *PrometheusCollector) RecordCacheHit(report string) {
	c.cacheLookups.WithLabelValues(report, "hit").Inc()
}

func (c *PrometheusCollector) RecordCacheMiss(report string) {
	c.cacheLookups.WithLabelValues(report, "miss").Inc()
}

func (c *PrometheusCollector) RecordTransactions(source string, count int) {
	c.transactions.WithLabelValues(source).Add(float64(count))
}

func (c *PrometheusCollector) SetDatasets(count int) {
	c.datasets.Set(float64(count))
}

// Registry returns the underlying registry.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
