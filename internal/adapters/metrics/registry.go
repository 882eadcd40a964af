// Package metrics exposes Prometheus collectors for the solver, the
// catalog cache, and the upstream catalog API, following the same
// global-registry-plus-package-level-recorder pattern as the daemon this
// repo started from.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "gunsmith"
	subsystem = "optimizer"
)

var (
	// Registry is the global Prometheus registry. Nil until InitRegistry is
	// called; every Record* function becomes a no-op while nil.
	Registry *prometheus.Registry

	globalSolver  SolverMetricsRecorder
	globalCatalog CatalogMetricsRecorder
)

// SolverMetricsRecorder records branch-and-bound solve outcomes.
type SolverMetricsRecorder interface {
	RecordSolve(status string, duration float64, nodesExplored int)
}

// CatalogMetricsRecorder records catalog cache and upstream fetch activity.
type CatalogMetricsRecorder interface {
	RecordCacheLookup(tier string, hit bool)
	RecordFetch(endpoint string, statusCode int, duration float64)
}

// InitRegistry initializes the Prometheus registry. Call once at startup
// when metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global registry, or nil if metrics are disabled.
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled reports whether metrics collection is active.
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSolverCollector installs the process-wide solver metrics recorder.
func SetGlobalSolverCollector(c SolverMetricsRecorder) {
	globalSolver = c
}

// SetGlobalCatalogCollector installs the process-wide catalog metrics recorder.
func SetGlobalCatalogCollector(c CatalogMetricsRecorder) {
	globalCatalog = c
}

// RecordSolve records a solve outcome via the global solver collector, if any.
func RecordSolve(status string, duration float64, nodesExplored int) {
	if globalSolver != nil {
		globalSolver.RecordSolve(status, duration, nodesExplored)
	}
}

// RecordCacheLookup records a cache lookup via the global catalog collector, if any.
func RecordCacheLookup(tier string, hit bool) {
	if globalCatalog != nil {
		globalCatalog.RecordCacheLookup(tier, hit)
	}
}

// RecordFetch records an upstream fetch via the global catalog collector, if any.
func RecordFetch(endpoint string, statusCode int, duration float64) {
	if globalCatalog != nil {
		globalCatalog.RecordFetch(endpoint, statusCode, duration)
	}
}
