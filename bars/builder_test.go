package bars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bars_clickhouse/models"
	"bars_clickhouse/table"
)

func TestBuildOutputColumnOrder(t *testing.T) {
	out := buildOutput(nil)
	assert.Equal(t, outputColumns, out.Names())
	assert.Equal(t, 0, out.NumRows())
}

func TestRecordsRoundTrip(t *testing.T) {
	base := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	in := []models.Bar{
		{
			Symbol:         "AAPL",
			StartTimestamp: base,
			EndTimestamp:   base.Add(time.Minute),
			Open:           180, High: 181, Low: 179.5, Close: 180.5,
			Volume: 1200, DollarValue: 216300, TickCount: 42, VWAP: 180.25,
		},
		{
			Symbol:         "MSFT",
			StartTimestamp: base,
			EndTimestamp:   base.Add(2 * time.Minute),
			Open:           300, High: 301, Low: 300, Close: 301,
			Volume: 500, DollarValue: 150250, TickCount: 17, VWAP: 300.5,
		},
	}

	recs, err := Records(buildOutput(in))
	require.NoError(t, err)
	assert.Equal(t, in, recs)
}

func TestRecordsRejectsForeignTable(t *testing.T) {
	_, err := Records(table.MustNew(table.FloatColumn("open", []float64{1})))
	assert.ErrorIs(t, err, ErrSchema)

	// Right names, wrong type.
	cols := make([]table.Column, 0, len(outputColumns))
	for _, name := range outputColumns {
		cols = append(cols, table.FloatColumn(name, []float64{1}))
	}
	_, err = Records(table.MustNew(cols...))
	assert.ErrorIs(t, err, ErrSchema)
}
