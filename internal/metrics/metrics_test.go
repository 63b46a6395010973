package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordPoolTransform(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(PoolTransformsTotal.WithLabelValues("trio"))

	RecordPoolTransform("trio")

	assert.Equal(t, before+1, testutil.ToFloat64(PoolTransformsTotal.WithLabelValues("trio")))
}

func TestRecordOrderLevel(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(OrderLevelsComputedTotal.WithLabelValues("4"))

	assert.NotPanics(t, func() {
		RecordOrderLevel(4, 0.002)
	})
	assert.Equal(t, before+1, testutil.ToFloat64(OrderLevelsComputedTotal.WithLabelValues("4")))
}

func TestRecordValidationFailure(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name string
		kind string
	}{
		{name: "range", kind: "range"},
		{name: "pool name", kind: "pool_name"},
		{name: "dimension", kind: "dimension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues(tt.kind))
			RecordValidationFailure(tt.kind)
			assert.Equal(t, before+1, testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues(tt.kind)))
		})
	}
}

func TestRecordPricerCache(t *testing.T) {
	InitRegistry()
	hits := testutil.ToFloat64(PricerCacheRequestsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(PricerCacheRequestsTotal.WithLabelValues("miss"))

	RecordPricerCache(true)
	RecordPricerCache(false)
	RecordPricerCache(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(PricerCacheRequestsTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(PricerCacheRequestsTotal.WithLabelValues("miss")))
}

func TestRecordStakingRun(t *testing.T) {
	InitRegistry()

	RecordStakingRun(true, 2, 0.28)

	assert.Equal(t, 0.28, testutil.ToFloat64(StakingTotalProportion))
}

func TestWriteText(t *testing.T) {
	InitRegistry()
	RecordPoolTransform("win")

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	assert.Contains(t, buf.String(), "harville_pool_transforms_total")
}
