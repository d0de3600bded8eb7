package bars

import (
	"fmt"
	"time"

	"bars_clickhouse/models"
	"bars_clickhouse/table"
)

// Output column order is fixed; downstream consumers index by position.
var outputColumns = []string{
	"symbol",
	"start_timestamp",
	"end_timestamp",
	"open",
	"high",
	"low",
	"close",
	"volume",
	"dollar_value",
	"tick_count",
	"vwap",
}

// buildOutput assembles closed bars into the output table.
func buildOutput(bars []models.Bar) *table.Table {
	n := len(bars)
	symbols := make([]string, n)
	startTS := make([]time.Time, n)
	endTS := make([]time.Time, n)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	dollars := make([]float64, n)
	tickCounts := make([]int64, n)
	vwaps := make([]float64, n)
	for i, b := range bars {
		symbols[i] = b.Symbol
		startTS[i] = b.StartTimestamp
		endTS[i] = b.EndTimestamp
		opens[i] = b.Open
		highs[i] = b.High
		lows[i] = b.Low
		closes[i] = b.Close
		volumes[i] = b.Volume
		dollars[i] = b.DollarValue
		tickCounts[i] = b.TickCount
		vwaps[i] = b.VWAP
	}
	return table.MustNew(
		table.StringColumn("symbol", symbols),
		table.TimeColumn("start_timestamp", startTS),
		table.TimeColumn("end_timestamp", endTS),
		table.FloatColumn("open", opens),
		table.FloatColumn("high", highs),
		table.FloatColumn("low", lows),
		table.FloatColumn("close", closes),
		table.FloatColumn("volume", volumes),
		table.FloatColumn("dollar_value", dollars),
		table.IntColumn("tick_count", tickCounts),
		table.FloatColumn("vwap", vwaps),
	)
}

// Records converts a bar table produced by this package back into bar
// records, for callers that hand the result to the storage layer or the
// file savers.
func Records(t *table.Table) ([]models.Bar, error) {
	kinds := map[string]table.Kind{
		"symbol":          table.String,
		"start_timestamp": table.Time,
		"end_timestamp":   table.Time,
		"tick_count":      table.Int64,
	}
	cols := make(map[string]table.Column, len(outputColumns))
	for _, name := range outputColumns {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: bar table missing column %q", ErrSchema, name)
		}
		want, special := kinds[name]
		if !special {
			want = table.Float64
		}
		if col.Kind != want {
			return nil, fmt.Errorf("%w: bar table column %q is %s, want %s", ErrSchema, name, col.Kind, want)
		}
		cols[name] = col
	}
	out := make([]models.Bar, t.NumRows())
	for i := range out {
		out[i] = models.Bar{
			Symbol:         cols["symbol"].Strings[i],
			StartTimestamp: cols["start_timestamp"].Times[i],
			EndTimestamp:   cols["end_timestamp"].Times[i],
			Open:           cols["open"].Float64s[i],
			High:           cols["high"].Float64s[i],
			Low:            cols["low"].Float64s[i],
			Close:          cols["close"].Float64s[i],
			Volume:         cols["volume"].Float64s[i],
			DollarValue:    cols["dollar_value"].Float64s[i],
			TickCount:      cols["tick_count"].Int64s[i],
			VWAP:           cols["vwap"].Float64s[i],
		}
	}
	return out, nil
}
