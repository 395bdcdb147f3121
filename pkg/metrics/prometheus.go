// Package metrics provides Prometheus metrics for the emissions dashboard.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the dashboard's Prometheus collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Interaction
	clicks        *prometheus.CounterVec
	invalidClicks *prometheus.CounterVec
	renders       *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec

	// Dataset
	datasetRows         *prometheus.CounterVec
	datasetLoadDuration *prometheus.HistogramVec

	// Sessions
	sessionsActive   prometheus.Gauge
	sessionEvictions prometheus.Counter

	// Export
	exports       *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager registered on the configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "co2dash",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.clicks = auto.NewCounterVec(
		m.counterOpts("clicks_total", "Total number of accepted clicks by source figure"),
		[]string{"source"},
	)
	m.invalidClicks = auto.NewCounterVec(
		m.counterOpts("invalid_clicks_total", "Total number of rejected click payloads by reason"),
		[]string{"reason"},
	)
	m.renders = auto.NewCounterVec(
		m.counterOpts("figure_renders_total", "Total number of figures rendered"),
		[]string{"figure"},
	)
	m.renderLatency = auto.NewHistogramVec(
		m.histogramOpts("figure_render_latency_milliseconds", "Figure render latency in milliseconds", m.histogramBuckets),
		[]string{"figure"},
	)

	m.datasetRows = auto.NewCounterVec(
		m.counterOpts("dataset_rows_total", "Rows read from the emission sources by outcome"),
		[]string{"dataset", "outcome"},
	)
	m.datasetLoadDuration = auto.NewHistogramVec(
		m.histogramOpts("dataset_load_duration_milliseconds", "Time spent parsing a source in milliseconds",
			[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}),
		[]string{"dataset"},
	)

	m.sessionsActive = auto.NewGauge(m.gaugeOpts("sessions_active", "Number of sessions currently held"))
	m.sessionEvictions = auto.NewCounter(m.counterOpts("session_evictions_total", "Total number of sessions evicted at capacity"))

	m.exports = auto.NewCounterVec(
		m.counterOpts("exports_total", "Total number of figure exports by figure, format and outcome"),
		[]string{"figure", "format", "outcome"},
	)
	m.exportLatency = auto.NewHistogramVec(
		m.histogramOpts("export_latency_milliseconds", "Figure export latency in milliseconds", m.histogramBuckets),
		[]string{"format"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordClick counts an accepted click on the given source figure.
func RecordClick(source string) {
	globalManager.clicks.WithLabelValues(source).Inc()
}

// RecordInvalidClick counts a rejected click payload.
func RecordInvalidClick(reason string) {
	globalManager.invalidClicks.WithLabelValues(reason).Inc()
}

// RecordRender counts a figure render and its latency.
func RecordRender(figure string, latencyMs float64) {
	globalManager.renders.WithLabelValues(figure).Inc()
	globalManager.renderLatency.WithLabelValues(figure).Observe(latencyMs)
}

// RecordDatasetRows adds n rows with the given outcome for a dataset.
func RecordDatasetRows(dataset, outcome string, n int) {
	if n <= 0 {
		return
	}
	globalManager.datasetRows.WithLabelValues(dataset, outcome).Add(float64(n))
}

// RecordDatasetLoad records how long parsing a dataset took.
func RecordDatasetLoad(dataset string, durationMs float64) {
	globalManager.datasetLoadDuration.WithLabelValues(dataset).Observe(durationMs)
}

// UpdateSessionsActive sets the number of sessions held.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordSessionEviction counts an evicted session.
func RecordSessionEviction() {
	globalManager.sessionEvictions.Inc()
}

// RecordExport counts an export attempt and its latency.
func RecordExport(figure, format, outcome string, latencyMs float64) {
	globalManager.exports.WithLabelValues(figure, format, outcome).Inc()
	globalManager.exportLatency.WithLabelValues(format).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Total sums every series of the named counter or gauge in the global
// registry. The name is given without namespace and subsystem.
func Total(name string) (float64, error) {
	return total(customRegistry, globalManager.fqName(name))
}

func (m *Manager) fqName(name string) string {
	return prometheus.BuildFQName(m.namespace, m.subsystem, name)
}

func total(g prometheus.Gatherer, fq string) (float64, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, err
	}
	for _, mf := range families {
		if mf.GetName() != fq {
			continue
		}
		var sum float64
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				sum += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				sum += metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				sum += float64(metric.GetHistogram().GetSampleCount())
			}
		}
		return sum, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownMetric, fq)
}
