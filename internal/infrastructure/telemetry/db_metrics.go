package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig holds configuration for query and pool metrics.
type DBMetricsConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration
	PoolStatsInterval  time.Duration
}

// DBMetrics records query counts, latencies and connection pool state.
type DBMetrics struct {
	queryTotal     *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter
	poolConns      metric.Int64Gauge

	config   DBMetricsConfig
	logger   *zap.Logger
	sqlDB    *sql.DB
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDBMetrics creates the instruments on meter.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval <= 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	queryTotal, err := NewCounter(meter, "db_query_total", "Total number of database queries by operation", "{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, "db_query_duration_seconds", "Database query latency in seconds", "s", DBDurationBuckets)
	if err != nil {
		return nil, err
	}
	slowQueryTotal, err := NewCounter(meter, "db_slow_query_total", "Queries slower than the configured threshold", "{query}")
	if err != nil {
		return nil, err
	}
	poolConns, err := meter.Int64Gauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		queryTotal:     queryTotal,
		queryDuration:  queryDuration,
		slowQueryTotal: slowQueryTotal,
		poolConns:      poolConns,
		config:         cfg,
		logger:         logger,
		stopCh:         make(chan struct{}),
	}, nil
}

// RecordQuery records one completed statement.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	if table == "" {
		table = "unknown"
	}
	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation), AttrDBTable.String(table))
	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))
	if duration > m.config.SlowQueryThreshold {
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
		m.logger.Warn("Slow query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("duration", duration))
	}
}

// StartPoolStats samples sqlDB.Stats every PoolStatsInterval until Stop or ctx ends.
func (m *DBMetrics) StartPoolStats(ctx context.Context, sqlDB *sql.DB) {
	m.sqlDB = sqlDB
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.config.PoolStatsInterval)
		defer ticker.Stop()

		m.collectPoolStats(ctx)
		for {
			select {
			case <-ticker.C:
				m.collectPoolStats(ctx)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *DBMetrics) collectPoolStats(ctx context.Context) {
	stats := m.sqlDB.Stats()
	m.poolConns.Record(ctx, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
	m.poolConns.Record(ctx, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
	m.poolConns.Record(ctx, int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max")))
}

// Stop ends pool sampling. Safe to call more than once and on a nil receiver.
func (m *DBMetrics) Stop() {
	if m == nil {
		return
	}
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
	})
}

type dbMetricsStartKey struct{}

// Name implements gorm.Plugin.
func (m *DBMetrics) Name() string { return "inv_db_metrics" }

// Initialize implements gorm.Plugin by timing every create, query, update,
// delete, row and raw statement.
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tx.Statement.Context = context.WithValue(ctx, dbMetricsStartKey{}, time.Now())
	}
	after := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			operation := op
			if operation == "" {
				operation = detectOperation(tx.Statement.SQL.String())
			}
			ctx := tx.Statement.Context
			if ctx == nil {
				ctx = context.Background()
			}
			var d time.Duration
			if start, ok := ctx.Value(dbMetricsStartKey{}).(time.Time); ok {
				d = time.Since(start)
			}
			m.RecordQuery(ctx, operation, tx.Statement.Table, d)
		}
	}

	cb := db.Callback()
	regs := []struct {
		name string
		err  error
	}{
		{"before_create", cb.Create().Before("gorm:create").Register("inv_metrics:before_create", before)},
		{"after_create", cb.Create().After("gorm:create").Register("inv_metrics:after_create", after("INSERT"))},
		{"before_query", cb.Query().Before("gorm:query").Register("inv_metrics:before_query", before)},
		{"after_query", cb.Query().After("gorm:query").Register("inv_metrics:after_query", after("SELECT"))},
		{"before_update", cb.Update().Before("gorm:update").Register("inv_metrics:before_update", before)},
		{"after_update", cb.Update().After("gorm:update").Register("inv_metrics:after_update", after("UPDATE"))},
		{"before_delete", cb.Delete().Before("gorm:delete").Register("inv_metrics:before_delete", before)},
		{"after_delete", cb.Delete().After("gorm:delete").Register("inv_metrics:after_delete", after("DELETE"))},
		{"before_row", cb.Row().Before("gorm:row").Register("inv_metrics:before_row", before)},
		{"after_row", cb.Row().After("gorm:row").Register("inv_metrics:after_row", after(""))},
		{"before_raw", cb.Raw().Before("gorm:raw").Register("inv_metrics:before_raw", before)},
		{"after_raw", cb.Raw().After("gorm:raw").Register("inv_metrics:after_raw", after(""))},
	}
	for _, r := range regs {
		if r.err != nil {
			return fmt.Errorf("register %s: %w", r.name, r.err)
		}
	}
	return nil
}

func detectOperation(statement string) string {
	statement = strings.ToUpper(strings.TrimSpace(statement))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(statement, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics installs the metrics plugin on db and starts pool sampling.
// It returns nil when cfg or the meter provider is disabled.
func RegisterDBMetrics(ctx context.Context, db *gorm.DB, mp *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled || !mp.IsEnabled() {
		return nil, nil
	}
	m, err := NewDBMetrics(mp.Meter("db.client"), cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := db.Use(m); err != nil {
		return nil, err
	}
	m.StartPoolStats(ctx, sqlDB)

	logger.Info("Database metrics registered",
		zap.Duration("slow_query_threshold", m.config.SlowQueryThreshold),
		zap.Duration("pool_stats_interval", m.config.PoolStatsInterval))
	return m, nil
}
