package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "time", cfg.Job.BarKind)
	assert.Equal(t, "1m", cfg.Job.BarSize)
	assert.True(t, cfg.Job.StoreBars)
	assert.Equal(t, "localhost", cfg.ClickHouse.Host)
	assert.Equal(t, 9000, cfg.ClickHouse.Port)
	assert.Equal(t, 30*time.Second, cfg.ClickHouse.QueryTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BAR_KIND", "tick")
	t.Setenv("BAR_SIZE", "100")
	t.Setenv("SYMBOLS", "AAPL, MSFT ,,TQQQ")
	t.Setenv("JOB_FROM", "2024-02-01T09:30:00Z")
	t.Setenv("STORE_BARS", "false")
	t.Setenv("EXPORT_FORMAT", "parquet")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tick", cfg.Job.BarKind)
	assert.Equal(t, "100", cfg.Job.BarSize)
	assert.Equal(t, []string{"AAPL", "MSFT", "TQQQ"}, cfg.Job.Symbols)
	assert.Equal(t, time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC), cfg.Job.From)
	assert.False(t, cfg.Job.StoreBars)
	assert.Equal(t, "parquet", cfg.Job.ExportFormat)
}

func TestLoadRejectsBadTimeRange(t *testing.T) {
	t.Setenv("JOB_FROM", "not-a-time")
	_, err := Load()
	assert.Error(t, err)
}
