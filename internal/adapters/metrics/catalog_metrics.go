package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetricsCollector records catalog cache hit rates (memory, database,
// disk) and upstream GraphQL fetch latency.
type CatalogMetricsCollector struct {
	cacheLookups  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

func NewCatalogMetricsCollector() *CatalogMetricsCollector {
	return &CatalogMetricsCollector{
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_cache_lookups_total",
				Help:      "Catalog cache lookups by tier (memory, database, disk) and outcome (hit, miss)",
			},
			[]string{"tier", "outcome"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_fetch_duration_seconds",
				Help:      "Upstream catalog API request duration by endpoint and status code",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 90},
			},
			[]string{"endpoint", "status_code"},
		),
	}
}

func (c *CatalogMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, m := range []prometheus.Collector{c.cacheLookups, c.fetchDuration} {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *CatalogMetricsCollector) RecordCacheLookup(tier string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	c.cacheLookups.WithLabelValues(tier, outcome).Inc()
}

func (c *CatalogMetricsCollector) RecordFetch(endpoint string, statusCode int, duration float64) {
	label := "error"
	if statusCode != 0 {
		label = strconv.Itoa(statusCode)
	}
	c.fetchDuration.WithLabelValues(endpoint, label).Observe(duration)
}
