package saver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bars_clickhouse/models"
)

func sampleBars() []models.Bar {
	base := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	return []models.Bar{
		{
			Symbol:         "AAPL",
			StartTimestamp: base,
			EndTimestamp:   base.Add(time.Minute),
			Open:           180, High: 181, Low: 179.5, Close: 180.5,
			Volume: 1200, DollarValue: 216300, TickCount: 42, VWAP: 180.25,
		},
	}
}

func TestNewFactory(t *testing.T) {
	assert.Equal(t, "csv", New("csv").Extension())
	assert.Equal(t, "json", New("JSON").Extension())
	assert.Equal(t, "parquet", New(" parquet ").Extension())
	assert.Nil(t, New("xml"))
	assert.Nil(t, New(""))
}

func TestCSVSaver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, CSVSaver{}.Save(sampleBars(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "symbol,start_timestamp,end_timestamp,open,high,low,close,volume,dollar_value,tick_count,vwap", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "AAPL,"))
	assert.Contains(t, lines[1], ",42,")
}

func TestJSONSaver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.json")
	require.NoError(t, JSONSaver{}.Save(sampleBars(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []models.Bar
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, sampleBars(), got)
}
