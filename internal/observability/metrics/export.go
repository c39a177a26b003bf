package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics tracks invoice rendering and batch export behaviour.
type ExportMetrics struct {
	renderDuration *prometheus.HistogramVec
	batchSize      prometheus.Histogram
	documents      *prometheus.CounterVec
	archives       prometheus.Counter
}

// NewExportMetrics registers export instruments on the given registerer.
func NewExportMetrics(registerer prometheus.Registerer, cfg Config) *ExportMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "billora"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "billora_invoice_render_duration_seconds",
			Help:        "Time spent assembling and rendering one invoice PDF.",
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		},
		[]string{"mode"}, // single | batch | preview
	)

	batchSize := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "billora_export_batch_size",
			Help:        "Number of orders submitted per batch export.",
			Buckets:     []float64{1, 2, 3, 4, 5, 10, 25, 50},
			ConstLabels: constLabels,
		},
	)

	documents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "billora_export_documents_total",
			Help:        "Total invoice documents produced by batch exports.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | failed
	)

	archives := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "billora_export_archives_total",
			Help:        "Total zip archives delivered by batch exports.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(renderDuration, batchSize, documents, archives)

	return &ExportMetrics{
		renderDuration: renderDuration,
		batchSize:      batchSize,
		documents:      documents,
		archives:       archives,
	}
}

// ObserveRender records the duration of one render in the given mode.
func (m *ExportMetrics) ObserveRender(mode string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveBatch records the submitted size of a batch export.
func (m *ExportMetrics) ObserveBatch(size int) {
	if m == nil {
		return
	}
	m.batchSize.Observe(float64(size))
}

// IncDocuments counts produced documents by result.
func (m *ExportMetrics) IncDocuments(result string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.documents.WithLabelValues(result).Add(float64(count))
}

// IncArchives counts delivered archives.
func (m *ExportMetrics) IncArchives() {
	if m == nil {
		return
	}
	m.archives.Inc()
}
