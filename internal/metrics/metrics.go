// Package metrics provides the centralized Prometheus metrics registry for the prober.
package metrics

import (
	"io"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PoolTransformsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "harville",
		Name:      "pool_transforms_total",
		Help:      "Total number of pool probability computations by pool",
	}, []string{"pool"})
	OrderLevelsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "harville",
		Name:      "order_levels_computed_total",
		Help:      "Total number of order tensors built by level",
	}, []string{"level"})
	ValidationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "harville",
		Name:      "validation_failures_total",
		Help:      "Total number of rejected inputs by error kind",
	}, []string{"kind"})
	PricerCacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "harville",
		Name:      "pricer_cache_requests_total",
		Help:      "Engine cache lookups by result",
	}, []string{"result"})
)

// Histogram metrics
var (
	OrderLevelDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "harville",
		Name:      "order_level_duration_seconds",
		Help:      "Time spent building an order tensor in seconds",
		Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 5},
	}, []string{"level"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PoolTransformsTotal)
		registry.MustRegister(OrderLevelsComputedTotal)
		registry.MustRegister(ValidationFailuresTotal)
		registry.MustRegister(PricerCacheRequestsTotal)
		registry.MustRegister(OrderLevelDuration)

		registry.MustRegister(StakingRunsTotal)
		registry.MustRegister(StakingTotalProportion)
		registry.MustRegister(StakingBackedOutcomes)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// WriteText writes every registered metric to w in the Prometheus text format.
func WriteText(w io.Writer) error {
	families, err := GetRegistry().Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// RecordPoolTransform records a pool computation.
func RecordPoolTransform(pool string) {
	PoolTransformsTotal.WithLabelValues(pool).Inc()
}

// RecordOrderLevel records the construction of an order tensor.
func RecordOrderLevel(level int, durationSeconds float64) {
	l := strconv.Itoa(level)
	OrderLevelsComputedTotal.WithLabelValues(l).Inc()
	OrderLevelDuration.WithLabelValues(l).Observe(durationSeconds)
}

// RecordValidationFailure records a rejected input.
func RecordValidationFailure(kind string) {
	ValidationFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordPricerCache records an engine cache lookup.
func RecordPricerCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	PricerCacheRequestsTotal.WithLabelValues(result).Inc()
}
