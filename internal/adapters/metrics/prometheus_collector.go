package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all metrics
	namespace = "research_queue"
	// Subsystem for session metrics
	subsystem = "session"
)

// Registry is the process-wide Prometheus registry, nil while metrics are disabled
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() *prometheus.Registry {
	Registry = NewRegistry()
	return Registry
}

// NewRegistry creates a registry preloaded with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// registerAll registers collectors on registry, falling back to the global one
func registerAll(registry prometheus.Registerer, collectors ...prometheus.Collector) error {
	if registry == nil {
		if Registry == nil {
			return nil // Metrics not enabled
		}
		registry = Registry
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}
