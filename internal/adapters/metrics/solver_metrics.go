package metrics

import "github.com/prometheus/client_golang/prometheus"

// SolverMetricsCollector records branch-and-bound solve latency, outcome
// status, and search size.
type SolverMetricsCollector struct {
	solveDuration *prometheus.HistogramVec
	solveStatus   *prometheus.CounterVec
	nodesExplored prometheus.Histogram
}

func NewSolverMetricsCollector() *SolverMetricsCollector {
	return &SolverMetricsCollector{
		solveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Branch-and-bound solve duration by outcome status",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
			},
			[]string{"status"},
		),
		solveStatus: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_status_total",
				Help:      "Total solves by outcome status (optimal, feasible, infeasible)",
			},
			[]string{"status"},
		),
		nodesExplored: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_nodes_explored",
				Help:      "Branch-and-bound nodes explored per solve",
				Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
	}
}

func (c *SolverMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, m := range []prometheus.Collector{c.solveDuration, c.solveStatus, c.nodesExplored} {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *SolverMetricsCollector) RecordSolve(status string, duration float64, nodesExplored int) {
	c.solveDuration.WithLabelValues(status).Observe(duration)
	c.solveStatus.WithLabelValues(status).Inc()
	c.nodesExplored.Observe(float64(nodesExplored))
}
