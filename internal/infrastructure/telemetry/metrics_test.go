package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/fcinventory/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestRegisterDBMetrics(t *testing.T) {
	type item struct {
		ID   uint
		Name string
	}

	open := func(t *testing.T) *gorm.DB {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(&item{}))
		return db
	}

	t.Run("disabled provider registers nothing", func(t *testing.T) {
		db := open(t)
		m, err := telemetry.RegisterDBMetrics(context.Background(), db, nil, telemetry.DBMetricsConfig{Enabled: true}, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Nil(t, m)
		assert.Nil(t, db.Callback().Query().Get("inv_metrics:after_query"))
		m.Stop()
	})

	t.Run("counts statements by operation", func(t *testing.T) {
		db := open(t)
		reader := sdkmetric.NewManualReader()
		mp, err := telemetry.NewMeterProviderWithReader(telemetry.Config{ServiceName: "fc-inventory"}, reader, zaptest.NewLogger(t))
		require.NoError(t, err)
		t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

		m, err := telemetry.RegisterDBMetrics(context.Background(), db, mp,
			telemetry.DBMetricsConfig{Enabled: true, PoolStatsInterval: time.Hour}, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, m)
		t.Cleanup(m.Stop)

		require.NoError(t, db.Create(&item{Name: "insole"}).Error)
		var got []item
		require.NoError(t, db.Find(&got).Error)
		require.NoError(t, db.Find(&got).Error)

		metrics := collectMetrics(t, reader)
		total, ok := metrics["db_query_total"].Data.(metricdata.Sum[int64])
		require.True(t, ok)

		byOp := map[string]int64{}
		for _, dp := range total.DataPoints {
			op, _ := dp.Attributes.Value(telemetry.AttrDBOperation)
			byOp[op.AsString()] += dp.Value
		}
		assert.Equal(t, int64(1), byOp["INSERT"])
		assert.Equal(t, int64(2), byOp["SELECT"])

		_, ok = metrics["db_query_duration_seconds"].Data.(metricdata.Histogram[float64])
		assert.True(t, ok)
		_, ok = metrics["db_pool_connections"]
		assert.True(t, ok)
	})
}

func TestDBMetrics_SlowQuery(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := telemetry.NewMeterProviderWithReader(telemetry.Config{}, reader, zaptest.NewLogger(t))
	require.NoError(t, err)

	m, err := telemetry.NewDBMetrics(mp.Meter("db.client"), telemetry.DBMetricsConfig{SlowQueryThreshold: 10 * time.Millisecond}, zaptest.NewLogger(t))
	require.NoError(t, err)

	m.RecordQuery(context.Background(), "select", "product", 50*time.Millisecond)
	m.RecordQuery(context.Background(), "select", "product", time.Millisecond)

	slow, ok := collectMetrics(t, reader)["db_slow_query_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, slow.DataPoints, 1)
	assert.Equal(t, int64(1), slow.DataPoints[0].Value)
	table, _ := slow.DataPoints[0].Attributes.Value(telemetry.AttrDBTable)
	assert.Equal(t, "product", table.AsString())
}
