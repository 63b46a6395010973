// Package metrics defines stake sizing metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	StakingRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "harville",
		Name:      "staking_runs_total",
		Help:      "Total number of stake sizing runs by whether an edge was found",
	}, []string{"edge"})

	StakingTotalProportion = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "harville",
		Name:      "staking_total_proportion",
		Help:      "Proportion of capital allocated by the last staking run",
	})

	StakingBackedOutcomes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "harville",
		Name:      "staking_backed_outcomes",
		Help:      "Number of outcomes receiving a stake per run",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
	})
)

// RecordStakingRun records the outcome of a stake sizing run.
func RecordStakingRun(edge bool, backed int, totalProportion float64) {
	label := "false"
	if edge {
		label = "true"
	}
	StakingRunsTotal.WithLabelValues(label).Inc()
	StakingTotalProportion.Set(totalProportion)
	StakingBackedOutcomes.Observe(float64(backed))
}
