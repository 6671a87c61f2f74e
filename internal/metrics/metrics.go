// Package metrics exposes Prometheus metrics for imports, manifest reloads
// and publishing.
//
// Metrics:
//   - blockpaste_imports_total{outcome}: imports by outcome (ok, error)
//   - blockpaste_blocks_total{type}: blocks produced, by block type
//   - blockpaste_import_duration_seconds: time spent deserializing
//   - blockpaste_registry_reloads_total{outcome}: manifest reloads
//   - blockpaste_registered_blocks: block types in the current tables
//   - blockpaste_publishes_total{outcome}: socket.io publishes
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/blockpaste/internal/document"
)

const namespace = "blockpaste"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector owns a private Prometheus registry and every blockpaste metric.
type Collector struct {
	registry *prometheus.Registry

	importsTotal     *prometheus.CounterVec
	blocksTotal      *prometheus.CounterVec
	importDuration   prometheus.Histogram
	reloadsTotal     *prometheus.CounterVec
	registeredBlocks prometheus.Gauge
	publishesTotal   *prometheus.CounterVec
}

// NewCollector creates and registers the metrics. A nil registry gets a
// fresh one with the Go runtime and process collectors attached.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry: registry,
		importsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Total number of HTML imports by outcome.",
		}, []string{"outcome"}),
		blocksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_total",
			Help:      "Total number of blocks produced by imports, by block type.",
		}, []string{"type"}),
		importDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time spent deserializing one HTML import.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		reloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_reloads_total",
			Help:      "Total number of plugin manifest reloads by outcome.",
		}, []string{"outcome"}),
		registeredBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_blocks",
			Help:      "Number of block types in the active registry tables.",
		}),
		publishesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publishes_total",
			Help:      "Total number of block publishes to socket.io by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		c.importsTotal,
		c.blocksTotal,
		c.importDuration,
		c.reloadsTotal,
		c.registeredBlocks,
		c.publishesTotal,
	)
	return c
}

// RecordImport records one finished import.
func (c *Collector) RecordImport(blocks []*document.Block, duration time.Duration, err error) {
	c.importDuration.Observe(duration.Seconds())
	if err != nil {
		c.importsTotal.WithLabelValues(OutcomeError).Inc()
		return
	}
	c.importsTotal.WithLabelValues(OutcomeOK).Inc()
	for _, b := range blocks {
		c.blocksTotal.WithLabelValues(b.Type).Inc()
	}
}

// RecordReload records a manifest reload and, on success, the number of
// block types now registered.
func (c *Collector) RecordReload(blockTypes int, err error) {
	if err != nil {
		c.reloadsTotal.WithLabelValues(OutcomeError).Inc()
		return
	}
	c.reloadsTotal.WithLabelValues(OutcomeOK).Inc()
	c.registeredBlocks.Set(float64(blockTypes))
}

// SetRegisteredBlocks sets the registered block type gauge.
func (c *Collector) SetRegisteredBlocks(n int) {
	c.registeredBlocks.Set(float64(n))
}

// RecordPublish records one publish attempt.
func (c *Collector) RecordPublish(err error) {
	if err != nil {
		c.publishesTotal.WithLabelValues(OutcomeError).Inc()
		return
	}
	c.publishesTotal.WithLabelValues(OutcomeOK).Inc()
}

// Handler returns the /metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
