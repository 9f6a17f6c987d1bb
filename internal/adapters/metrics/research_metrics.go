package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	domainResearch "github.com/andrescamacho/research-queue/internal/domain/research"
)

// ResearchMetricsCollector records research progress and queue metrics
type ResearchMetricsCollector struct {
	progressTotal      *prometheus.CounterVec
	completionsTotal   *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	queueLength        prometheus.Gauge
}

// NewResearchMetricsCollector creates a new research metrics collector
func NewResearchMetricsCollector() *ResearchMetricsCollector {
	return &ResearchMetricsCollector{
		progressTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "progress_points_total",
				Help:      "Research points applied per project",
			},
			[]string{"project"},
		),
		completionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "completions_total",
				Help:      "Projects completed by the progress engine",
			},
			[]string{"project"},
		),
		notificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notifications_total",
				Help:      "Completion notifications emitted by severity",
			},
			[]string{"severity"},
		),
		queueLength: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_length",
				Help:      "Number of projects waiting in the research queue",
			},
		),
	}
}

// Register registers all research metrics; a nil registry means the global one
func (c *ResearchMetricsCollector) Register(registry prometheus.Registerer) error {
	return registerAll(registry,
		c.progressTotal,
		c.completionsTotal,
		c.notificationsTotal,
		c.queueLength,
	)
}

// RecordProgress adds applied research points for a project
func (c *ResearchMetricsCollector) RecordProgress(projectID string, amount float64) {
	if amount <= 0 {
		return
	}
	c.progressTotal.WithLabelValues(projectID).Add(amount)
}

// RecordCompletion counts a finished project and its notification severity
func (c *ResearchMetricsCollector) RecordCompletion(projectID string, severity domainResearch.Severity) {
	c.completionsTotal.WithLabelValues(projectID).Inc()
	c.notificationsTotal.WithLabelValues(severity.String()).Inc()
}

// RecordQueueLength sets the current queue length
func (c *ResearchMetricsCollector) RecordQueueLength(length int) {
	c.queueLength.Set(float64(length))
}
