package bars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorAccumulates(t *testing.T) {
	var agg aggregator
	base := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

	agg.Ingest(tick(base, 10, 1))
	agg.Ingest(tick(base.Add(time.Second), 12, 2))
	agg.Ingest(tick(base.Add(2*time.Second), 9, 1))

	bar, err := agg.CloseBar("AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", bar.Symbol)
	assert.Equal(t, base, bar.StartTimestamp)
	assert.Equal(t, base.Add(2*time.Second), bar.EndTimestamp)
	assert.Equal(t, 10.0, bar.Open)
	assert.Equal(t, 12.0, bar.High)
	assert.Equal(t, 9.0, bar.Low)
	assert.Equal(t, 9.0, bar.Close)
	assert.Equal(t, 4.0, bar.Volume)
	assert.Equal(t, 43.0, bar.DollarValue)
	assert.Equal(t, int64(3), bar.TickCount)
	assert.InDelta(t, 10.75, bar.VWAP, 1e-12)
}

func TestAggregatorResetsOnClose(t *testing.T) {
	var agg aggregator
	base := time.Unix(0, 0)

	agg.Ingest(tick(base, 100, 5))
	_, err := agg.CloseBar("X")
	require.NoError(t, err)
	assert.False(t, agg.HasOpenBar())
	assert.Equal(t, int64(0), agg.OpenTicks())

	// A new bar after close starts from the next tick, not stale state.
	agg.Ingest(tick(base.Add(time.Second), 50, 1))
	bar, err := agg.CloseBar("X")
	require.NoError(t, err)
	assert.Equal(t, 50.0, bar.Open)
	assert.Equal(t, 50.0, bar.High)
	assert.Equal(t, int64(1), bar.TickCount)
}

func TestAggregatorCloseEmpty(t *testing.T) {
	var agg aggregator
	_, err := agg.CloseBar("X")
	assert.ErrorIs(t, err, ErrEmptyBar)
}
