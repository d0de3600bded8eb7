package bars

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bars_clickhouse/models"
	"bars_clickhouse/utils"
)

// partition holds one symbol's ticks in input order.
type partition struct {
	symbol string
	ticks  []models.Tick
}

type symbolResult struct {
	bars    []models.Bar
	dropped int64
	err     error
}

// engine drives per-symbol Sampler+Aggregator pairs over the full stream.
// Each symbol owns private mutable state, so partitions run on independent
// workers without locking. Output order is fixed (symbol asc, then end
// timestamp asc) so reruns are bit-identical.
type engine struct {
	newSampler   func() Sampler
	workers      int
	assumeSorted bool
}

func (e *engine) run(acc *accessors) ([]models.Bar, models.BuildStats, error) {
	started := time.Now()
	stats := models.BuildStats{
		RunID:   uuid.New().String(),
		TicksIn: acc.rows,
	}

	parts := e.partition(acc)
	stats.Symbols = len(parts)

	workers := e.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(parts) {
		workers = len(parts)
	}

	results := make([]symbolResult, len(parts))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.processSymbol(parts[i])
			}
		}()
	}
	for i := range parts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out []models.Bar
	for i, res := range results {
		if res.err != nil {
			return nil, stats, res.err
		}
		if res.dropped > 0 {
			utils.Logger.Debugw("Dropped trailing partial bar",
				"run_id", stats.RunID,
				"symbol", parts[i].symbol,
				"ticks", res.dropped,
			)
		}
		out = append(out, res.bars...)
		stats.DroppedTicks += res.dropped
	}
	stats.BarsOut = len(out)
	stats.Elapsed = time.Since(started)
	return out, stats, nil
}

// partition splits the input into per-symbol tick streams, preserving input
// order inside each stream, then orders the partitions by symbol so the
// merged output is deterministic regardless of input grouping.
func (e *engine) partition(acc *accessors) []partition {
	index := make(map[string]int)
	var parts []partition
	for i := 0; i < acc.rows; i++ {
		sym, price, size, ts := acc.tick(i)
		p, ok := index[sym]
		if !ok {
			p = len(parts)
			index[sym] = p
			parts = append(parts, partition{symbol: sym})
		}
		parts[p].ticks = append(parts[p].ticks, models.Tick{
			Timestamp: ts,
			Symbol:    sym,
			Price:     price,
			Size:      size,
		})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].symbol < parts[j].symbol })
	return parts
}

func (e *engine) processSymbol(p partition) symbolResult {
	ticks := p.ticks
	if !e.assumeSorted {
		sort.SliceStable(ticks, func(i, j int) bool {
			return ticks[i].Timestamp.Before(ticks[j].Timestamp)
		})
	}

	sampler := e.newSampler()
	var agg aggregator
	var out []models.Bar
	for _, t := range ticks {
		switch sampler.Observe(t) {
		case Continue:
			agg.Ingest(t)
		case CloseAfter:
			agg.Ingest(t)
			bar, err := agg.CloseBar(p.symbol)
			if err != nil {
				return symbolResult{err: err}
			}
			out = append(out, bar)
			sampler.Reset()
		case CloseBeforeAndOpen:
			// The triggering tick belongs to the next window; close
			// without it, then open the fresh bar with it. The time
			// sampler already tracks the new window.
			bar, err := agg.CloseBar(p.symbol)
			if err != nil {
				return symbolResult{err: err}
			}
			out = append(out, bar)
			agg.Ingest(t)
		}
	}
	// Trailing partial bars are dropped by policy, not emitted.
	return symbolResult{bars: out, dropped: agg.OpenTicks()}
}
