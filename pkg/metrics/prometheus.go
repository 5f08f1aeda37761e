// Package metrics provides Prometheus metrics for the stratus pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the stratus pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Ingestion metrics - raw feed quality
	samplesRead    prometheus.Counter
	samplesSkipped prometheus.Counter

	// Dataset metrics - window construction outcomes
	examplesValid      prometheus.Counter
	examplesInvalid    prometheus.Counter
	trainExamples      prometheus.Gauge
	validationExamples prometheus.Gauge
	collectDuration    prometheus.Histogram

	// Scraper metrics - remote API behavior
	scrapeRequests *prometheus.CounterVec
	scrapeRetries  prometheus.Counter
	scrapePages    prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stratus",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.samplesRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "samples_read_total",
		Help:      "Total number of raw samples decoded from the input feed",
	})

	m.samplesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "samples_skipped_total",
		Help:      "Total number of malformed raw samples skipped during ingestion",
	})

	m.examplesValid = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "examples_valid_total",
		Help:      "Total number of training examples that passed the window validity check",
	})

	m.examplesInvalid = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "examples_invalid_total",
		Help:      "Total number of training examples dropped for incomplete windows",
	})

	m.trainExamples = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "train_examples",
		Help:      "Number of examples assigned to the training split in the last run",
	})

	m.validationExamples = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_examples",
		Help:      "Number of examples assigned to the validation split in the last run",
	})

	m.collectDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "collect_duration_milliseconds",
		Help:      "Histogram of example collection duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.scrapeRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "scrape_requests_total",
			Help:      "Total number of sensor API requests by outcome",
		},
		[]string{"outcome"},
	)

	m.scrapeRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scrape_retries_total",
		Help:      "Total number of retried sensor API requests",
	})

	m.scrapePages = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scrape_pages_total",
		Help:      "Total number of history pages fetched from the sensor API",
	})
}

// Package-level helpers operating on the global manager.

// RecordSampleRead increments the raw-sample counter.
func RecordSampleRead() {
	globalManager.samplesRead.Inc()
}

// RecordSampleSkipped increments the malformed-sample counter.
func RecordSampleSkipped() {
	globalManager.samplesSkipped.Inc()
}

// RecordExampleValid increments the valid-example counter.
func RecordExampleValid() {
	globalManager.examplesValid.Inc()
}

// RecordExampleInvalid increments the dropped-example counter.
func RecordExampleInvalid() {
	globalManager.examplesInvalid.Inc()
}

// UpdateSplitSizes records the sizes of the last train/validation split.
func UpdateSplitSizes(train, validation int) {
	globalManager.trainExamples.Set(float64(train))
	globalManager.validationExamples.Set(float64(validation))
}

// RecordCollectDuration records how long example collection took.
func RecordCollectDuration(latencyMs float64) {
	globalManager.collectDuration.Observe(latencyMs)
}

// RecordScrapeRequest counts a sensor API request by outcome ("ok", "error").
func RecordScrapeRequest(outcome string) {
	globalManager.scrapeRequests.WithLabelValues(outcome).Inc()
}

// RecordScrapeRetry counts a retried sensor API request.
func RecordScrapeRetry() {
	globalManager.scrapeRetries.Inc()
}

// RecordScrapePage counts a fetched history page.
func RecordScrapePage() {
	globalManager.scrapePages.Inc()
}

// Handler returns an http.Handler serving the global metrics registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// GetRegistry returns the global metrics registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
