package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		Environment string
		LogLevel    string
		NumWorkers  int
		HTTPAddr    string
	}

	Job struct {
		// BarKind selects the sampling policy: time, tick, volume, dollar.
		BarKind string
		// BarSize is policy-dependent: a duration expression for time
		// bars, a count for tick bars, a threshold for volume/dollar.
		BarSize string
		Symbols []string
		From    time.Time
		To      time.Time
		// StoreBars inserts the result into ClickHouse.
		StoreBars bool
		// ExportFormat writes the result to ExportPath (csv, json,
		// parquet); empty disables file export.
		ExportFormat string
		ExportPath   string
	}

	ClickHouse struct {
		Host            string
		Port            int
		User            string
		Password        string
		Database        string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		QueryTimeout    time.Duration
		Debug           bool
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	// App settings
	cfg.App.Environment = getEnvOrDefault("APP_ENV", "production")
	cfg.App.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")
	cfg.App.NumWorkers = getEnvAsIntOrDefault("NUM_WORKERS", 0)
	cfg.App.HTTPAddr = getEnvOrDefault("HTTP_ADDR", ":8080")

	// Job settings
	cfg.Job.BarKind = getEnvOrDefault("BAR_KIND", "time")
	cfg.Job.BarSize = getEnvOrDefault("BAR_SIZE", "1m")
	cfg.Job.Symbols = splitAndTrim(os.Getenv("SYMBOLS"))
	cfg.Job.StoreBars = getEnvOrDefault("STORE_BARS", "true") == "true"
	cfg.Job.ExportFormat = os.Getenv("EXPORT_FORMAT")
	cfg.Job.ExportPath = getEnvOrDefault("EXPORT_PATH", "bars_out")

	var err error
	if cfg.Job.From, err = getEnvAsTime("JOB_FROM", time.Now().Add(-24*time.Hour)); err != nil {
		return nil, err
	}
	if cfg.Job.To, err = getEnvAsTime("JOB_TO", time.Now()); err != nil {
		return nil, err
	}

	// ClickHouse settings
	cfg.ClickHouse.Host = getEnvOrDefault("CLICKHOUSE_HOST", "localhost")
	cfg.ClickHouse.Port = getEnvAsIntOrDefault("CLICKHOUSE_PORT", 9000)
	cfg.ClickHouse.User = getEnvOrDefault("CLICKHOUSE_USER", "default")
	cfg.ClickHouse.Password = os.Getenv("CLICKHOUSE_PASSWORD")
	cfg.ClickHouse.Database = getEnvOrDefault("CLICKHOUSE_DB", "default")
	cfg.ClickHouse.MaxOpenConns = getEnvAsIntOrDefault("CLICKHOUSE_MAX_OPEN_CONNS", 10)
	cfg.ClickHouse.MaxIdleConns = getEnvAsIntOrDefault("CLICKHOUSE_MAX_IDLE_CONNS", 5)
	cfg.ClickHouse.ConnMaxLifetime = time.Duration(getEnvAsIntOrDefault("CLICKHOUSE_CONN_MAX_LIFETIME_MINS", 60)) * time.Minute
	cfg.ClickHouse.QueryTimeout = time.Duration(getEnvAsIntOrDefault("CLICKHOUSE_QUERY_TIMEOUT_SECS", 30)) * time.Second
	cfg.ClickHouse.Debug = cfg.App.Environment != "production"

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsTime(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %v", key, err)
	}
	return ts, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
