package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementDatabaseQueries(t *testing.T) {
	provider := NewPrometheusMetricsProvider()

	okBefore := testutil.ToFloat64(DatabaseQueriesTotal.WithLabelValues("provider_test_op", "true"))
	failBefore := testutil.ToFloat64(DatabaseQueriesTotal.WithLabelValues("provider_test_op", "false"))

	provider.IncrementDatabaseQueries("provider_test_op", true)
	provider.IncrementDatabaseQueries("provider_test_op", true)
	provider.IncrementDatabaseQueries("provider_test_op", false)

	okAfter := testutil.ToFloat64(DatabaseQueriesTotal.WithLabelValues("provider_test_op", "true"))
	failAfter := testutil.ToFloat64(DatabaseQueriesTotal.WithLabelValues("provider_test_op", "false"))

	assert.Equal(t, float64(2), okAfter-okBefore)
	assert.Equal(t, float64(1), failAfter-failBefore)
}

func TestRecordDatabaseQueryDuration(t *testing.T) {
	provider := NewPrometheusMetricsProvider()

	provider.RecordDatabaseQueryDuration("provider_test_duration_op", 25*time.Millisecond)

	observer, err := DatabaseQueryDuration.GetMetricWithLabelValues("provider_test_duration_op")
	require.NoError(t, err)

	var written dto.Metric
	require.NoError(t, observer.(prometheus.Metric).Write(&written))
	assert.Equal(t, uint64(1), written.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.025, written.GetHistogram().GetSampleSum(), 0.001)
}

func TestCacheCounters(t *testing.T) {
	provider := NewPrometheusMetricsProvider()

	hitsBefore := testutil.ToFloat64(CacheHitsTotal)
	missesBefore := testutil.ToFloat64(CacheMissesTotal)

	provider.IncrementCacheHits()
	provider.IncrementCacheMisses()
	provider.IncrementCacheMisses()

	assert.Equal(t, float64(1), testutil.ToFloat64(CacheHitsTotal)-hitsBefore)
	assert.Equal(t, float64(2), testutil.ToFloat64(CacheMissesTotal)-missesBefore)
}

func TestSetServiceHealth(t *testing.T) {
	provider := NewPrometheusMetricsProvider()

	provider.SetServiceHealth(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(ServiceHealth))

	provider.SetServiceHealth(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(ServiceHealth))
}
