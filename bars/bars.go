// Package bars converts unordered trade-tick tables into OHLCV bar tables.
//
// Bar boundaries come from one of four sampling policies: elapsed time, tick
// count, cumulative volume, or cumulative dollar value. Symbols are processed
// independently and in parallel; output is deterministic for a given input
// and configuration.
package bars

import (
	"fmt"

	"bars_clickhouse/metrics"
	"bars_clickhouse/table"
	"bars_clickhouse/utils"
)

// Option tunes a single bar-construction call.
type Option func(*options)

type options struct {
	columns      ColumnMapping
	workers      int
	assumeSorted bool
}

// WithColumns overrides the process-wide column mapping for this call only.
// The defaults are left untouched.
func WithColumns(m ColumnMapping) Option {
	return func(o *options) { o.columns = m }
}

// WithWorkers caps the number of parallel symbol workers. Defaults to
// runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithSortedInput skips the per-symbol timestamp sort. Only safe when every
// symbol's ticks already arrive in non-decreasing timestamp order.
func WithSortedInput() Option {
	return func(o *options) { o.assumeSorted = true }
}

// TimeBars builds fixed-window bars. barSize is a duration expression such
// as "15m" or "1h"; windows align to clock multiples of the window length.
func TimeBars(data *table.Table, barSize string, opts ...Option) (*table.Table, error) {
	window, err := ParseBarSize(barSize)
	if err != nil {
		return nil, err
	}
	return build(data, "time", func() Sampler { return newTimeSampler(window) }, opts)
}

// TickBars builds bars holding barSize ticks each.
func TickBars(data *table.Table, barSize int, opts ...Option) (*table.Table, error) {
	if barSize <= 0 {
		return nil, fmt.Errorf("%w: tick count %d is not positive", ErrInvalidBarSize, barSize)
	}
	return build(data, "tick", func() Sampler { return newTickCountSampler(barSize) }, opts)
}

// VolumeBars builds bars closing once cumulative size reaches barSize.
func VolumeBars(data *table.Table, barSize float64, opts ...Option) (*table.Table, error) {
	if barSize <= 0 {
		return nil, fmt.Errorf("%w: volume threshold %v is not positive", ErrInvalidBarSize, barSize)
	}
	return build(data, "volume", func() Sampler { return newVolumeSampler(barSize) }, opts)
}

// DollarBars builds bars closing once cumulative price*size reaches barSize.
func DollarBars(data *table.Table, barSize float64, opts ...Option) (*table.Table, error) {
	if barSize <= 0 {
		return nil, fmt.Errorf("%w: dollar threshold %v is not positive", ErrInvalidBarSize, barSize)
	}
	return build(data, "dollar", func() Sampler { return newDollarSampler(barSize) }, opts)
}

func build(data *table.Table, kind string, newSampler func() Sampler, opts []Option) (*table.Table, error) {
	o := options{columns: DefaultColumns()}
	for _, opt := range opts {
		opt(&o)
	}

	acc, err := resolveColumns(data, o.columns)
	if err != nil {
		metrics.IncrementErrors()
		return nil, err
	}

	eng := &engine{
		newSampler:   newSampler,
		workers:      o.workers,
		assumeSorted: o.assumeSorted,
	}
	built, stats, err := eng.run(acc)
	if err != nil {
		metrics.IncrementErrors()
		return nil, err
	}

	metrics.AddTicksProcessed(stats.TicksIn)
	metrics.AddBarsBuilt(stats.BarsOut)
	metrics.RecordBuildDuration(kind, stats.Elapsed)
	utils.Logger.Infow("Bars built",
		"run_id", stats.RunID,
		"kind", kind,
		"symbols", stats.Symbols,
		"ticks_in", stats.TicksIn,
		"bars_out", stats.BarsOut,
		"dropped_ticks", stats.DroppedTicks,
		"elapsed_ms", stats.Elapsed.Milliseconds(),
	)
	return buildOutput(built), nil
}
