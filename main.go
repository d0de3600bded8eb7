package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bars_clickhouse/bars"
	"bars_clickhouse/config"
	"bars_clickhouse/db"
	"bars_clickhouse/middleware"
	"bars_clickhouse/monitoring"
	"bars_clickhouse/saver"
	"bars_clickhouse/table"
	"bars_clickhouse/utils"
)

func main() {
	// Load environment variables; a missing .env just means the real
	// environment is already set.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize DB
	chdb, err := db.NewClickHouseDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer chdb.Close()

	monitoring.StartMetricsCollection()
	monitoring.RegisterHealthCheck("clickhouse", func() bool {
		return chdb.Ping(context.Background()) == nil
	})

	// Health and metrics endpoints for the duration of the run
	mux := http.NewServeMux()
	mux.HandleFunc("/health", monitoring.HealthCheckHandler)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.App.HTTPAddr,
		Handler: utils.RequestLogger(mux),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Error(err, "Metrics server error")
		}
	}()

	var jobErr error
	middleware.RecoverMiddleware(func() {
		jobErr = runJob(context.Background(), cfg, chdb)
	})
	if jobErr != nil {
		utils.Error(jobErr, "Bar build job failed",
			"bar_kind", cfg.Job.BarKind,
			"bar_size", cfg.Job.BarSize,
		)
		log.Fatalf("Bar build job failed: %v", jobErr)
	}
}

func runJob(ctx context.Context, cfg *config.Config, chdb *db.ClickHouseDB) error {
	queryCtx, cancel := context.WithTimeout(ctx, cfg.ClickHouse.QueryTimeout)
	defer cancel()

	ticks, err := chdb.QueryTicks(queryCtx, cfg.Job.Symbols, cfg.Job.From, cfg.Job.To)
	if err != nil {
		return err
	}
	utils.Logger.Infow("Ticks loaded",
		"rows", ticks.NumRows(),
		"symbols", len(cfg.Job.Symbols),
		"from", cfg.Job.From,
		"to", cfg.Job.To,
	)

	result, err := buildBars(ticks, cfg)
	if err != nil {
		return err
	}

	records, err := bars.Records(result)
	if err != nil {
		return err
	}

	if cfg.Job.StoreBars {
		if err := chdb.InsertBars(ctx, records); err != nil {
			return err
		}
		utils.Logger.Infow("Bars stored", "count", len(records))
	}

	if cfg.Job.ExportFormat != "" {
		s := saver.New(cfg.Job.ExportFormat)
		if s == nil {
			return fmt.Errorf("unsupported export format %q (use csv, json or parquet)", cfg.Job.ExportFormat)
		}
		path := cfg.Job.ExportPath + "." + s.Extension()
		if err := s.Save(records, path); err != nil {
			return err
		}
		utils.Logger.Infow("Bars exported", "path", path, "count", len(records))
	}

	return nil
}

// buildBars dispatches to the sampling policy named by the job config. The
// ticks arrive ordered from the query, so the per-symbol sort is skipped.
func buildBars(ticks *table.Table, cfg *config.Config) (*table.Table, error) {
	opts := []bars.Option{
		bars.WithWorkers(cfg.App.NumWorkers),
		bars.WithSortedInput(),
	}

	switch cfg.Job.BarKind {
	case "time":
		return bars.TimeBars(ticks, cfg.Job.BarSize, opts...)
	case "tick":
		n, err := strconv.Atoi(cfg.Job.BarSize)
		if err != nil {
			return nil, fmt.Errorf("%w: tick bar size %q", bars.ErrInvalidBarSize, cfg.Job.BarSize)
		}
		return bars.TickBars(ticks, n, opts...)
	case "volume":
		threshold, err := strconv.ParseFloat(cfg.Job.BarSize, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: volume bar size %q", bars.ErrInvalidBarSize, cfg.Job.BarSize)
		}
		return bars.VolumeBars(ticks, threshold, opts...)
	case "dollar":
		threshold, err := strconv.ParseFloat(cfg.Job.BarSize, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: dollar bar size %q", bars.ErrInvalidBarSize, cfg.Job.BarSize)
		}
		return bars.DollarBars(ticks, threshold, opts...)
	default:
		return nil, errors.New("BAR_KIND must be one of: time, tick, volume, dollar")
	}
}
