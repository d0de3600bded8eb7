package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/cenkalti/backoff/v4"

	"bars_clickhouse/bars"
	"bars_clickhouse/config"
	"bars_clickhouse/middleware"
	"bars_clickhouse/models"
	"bars_clickhouse/monitoring"
	"bars_clickhouse/table"
	"bars_clickhouse/utils"
)

const createTicksTableSQL = `
CREATE TABLE IF NOT EXISTS trade_ticks (
    timestamp DateTime64(9),
    symbol String,
    price Float64,
    size Float64
) ENGINE = MergeTree()
ORDER BY (symbol, timestamp)
`

const createBarsTableSQL = `
CREATE TABLE IF NOT EXISTS trade_bars (
    symbol String,
    start_timestamp DateTime64(9),
    end_timestamp DateTime64(9),
    open Float64,
    high Float64,
    low Float64,
    close Float64,
    volume Float64,
    dollar_value Float64,
    tick_count Int64,
    vwap Float64
) ENGINE = MergeTree()
ORDER BY (symbol, end_timestamp)
`

type ClickHouseDB struct {
	conn driver.Conn
}

func NewClickHouseDB(cfg *config.Config) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.ClickHouse.Host, cfg.ClickHouse.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouse.Database,
			Username: cfg.ClickHouse.User,
			Password: cfg.ClickHouse.Password,
		},
		Protocol:        clickhouse.Native,
		Debug:           cfg.ClickHouse.Debug,
		MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
		MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %v", err)
	}

	db := &ClickHouseDB{conn: conn}
	if err := db.createTables(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *ClickHouseDB) createTables() error {
	ctx := context.Background()
	if err := db.conn.Exec(ctx, createTicksTableSQL); err != nil {
		return err
	}
	return db.conn.Exec(ctx, createBarsTableSQL)
}

func (db *ClickHouseDB) Ping(ctx context.Context) error {
	return db.conn.Ping(ctx)
}

func (db *ClickHouseDB) Close() error {
	return db.conn.Close()
}

func (db *ClickHouseDB) InsertTicks(ctx context.Context, ticks []models.Tick) error {
	batch, err := db.conn.PrepareBatch(ctx, "INSERT INTO trade_ticks")
	if err != nil {
		return err
	}

	for _, tick := range ticks {
		if err := batch.AppendStruct(&tick); err != nil {
			return err
		}
	}

	return batch.Send()
}

// InsertBars writes built bars in one batch, behind the circuit breaker and
// the standard retry policy.
func (db *ClickHouseDB) InsertBars(ctx context.Context, barRecords []models.Bar) error {
	monitoring.InsertBatchSize.Set(float64(len(barRecords)))

	insert := func() error {
		started := time.Now()
		batch, err := db.conn.PrepareBatch(ctx, "INSERT INTO trade_bars")
		if err != nil {
			return err
		}
		for _, bar := range barRecords {
			if err := batch.AppendStruct(&bar); err != nil {
				return err
			}
		}
		if err := batch.Send(); err != nil {
			return err
		}
		monitoring.QueryDuration.WithLabelValues("insert_bars").Observe(time.Since(started).Seconds())
		return nil
	}

	return middleware.WithCircuitBreaker(ctx, "insert_bars", func() error {
		return backoff.Retry(insert, backoff.WithContext(utils.NewExponentialBackoff(), ctx))
	})
}

// QueryTicks loads the tick table for the given symbols and time range. The
// returned table's columns follow the process-wide column mapping so it can
// be handed straight to the bar builders. An empty symbol list selects all
// symbols.
func (db *ClickHouseDB) QueryTicks(ctx context.Context, symbols []string, from, to time.Time) (*table.Table, error) {
	started := time.Now()

	query := "SELECT timestamp, symbol, price, size FROM trade_ticks WHERE timestamp >= ? AND timestamp < ?"
	args := []interface{}{from, to}
	if len(symbols) > 0 {
		query += " AND symbol IN (?)"
		args = append(args, symbols)
	}
	query += " ORDER BY symbol, timestamp"

	rows, err := db.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ticks: %v", err)
	}
	defer rows.Close()

	var (
		timestamps []time.Time
		syms       []string
		prices     []float64
		sizes      []float64
	)
	for rows.Next() {
		var (
			ts    time.Time
			sym   string
			price float64
			size  float64
		)
		if err := rows.Scan(&ts, &sym, &price, &size); err != nil {
			return nil, fmt.Errorf("scan tick: %v", err)
		}
		timestamps = append(timestamps, ts)
		syms = append(syms, sym)
		prices = append(prices, price)
		sizes = append(sizes, size)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ticks: %v", err)
	}

	monitoring.QueryDuration.WithLabelValues("query_ticks").Observe(time.Since(started).Seconds())

	mapping := bars.DefaultColumns()
	return table.New(
		table.TimeColumn(mapping.Timestamp, timestamps),
		table.StringColumn(mapping.Symbol, syms),
		table.FloatColumn(mapping.Price, prices),
		table.FloatColumn(mapping.Size, sizes),
	)
}
