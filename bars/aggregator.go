package bars

import (
	"fmt"
	"time"

	"bars_clickhouse/models"
)

// aggregator accumulates the open bar for one symbol. State lives only
// between the first Ingest after a reset and the matching CloseBar; CloseBar
// resets it. One aggregator serves exactly one symbol's stream.
type aggregator struct {
	open    bool
	startTS time.Time
	endTS   time.Time

	openPx  float64
	high    float64
	low     float64
	closePx float64

	volume float64
	dollar float64
	ticks  int64
}

// Ingest folds one tick into the open bar, opening it if necessary.
func (a *aggregator) Ingest(t models.Tick) {
	if !a.open {
		a.open = true
		a.startTS = t.Timestamp
		a.openPx = t.Price
		a.high = t.Price
		a.low = t.Price
	} else {
		if t.Price > a.high {
			a.high = t.Price
		}
		if t.Price < a.low {
			a.low = t.Price
		}
	}
	a.endTS = t.Timestamp
	a.closePx = t.Price
	a.volume += t.Size
	a.dollar += t.DollarValue()
	a.ticks++
}

// HasOpenBar reports whether at least one tick has been ingested since the
// last close.
func (a *aggregator) HasOpenBar() bool { return a.open }

// OpenTicks returns the tick count of the open bar (zero when none is open).
func (a *aggregator) OpenTicks() int64 {
	if !a.open {
		return 0
	}
	return a.ticks
}

// CloseBar materializes the open bar and resets the accumulator. Closing
// with no ingested ticks is an engine invariant violation.
func (a *aggregator) CloseBar(symbol string) (models.Bar, error) {
	if !a.open {
		return models.Bar{}, fmt.Errorf("%w: symbol %q", ErrEmptyBar, symbol)
	}
	bar := models.Bar{
		Symbol:         symbol,
		StartTimestamp: a.startTS,
		EndTimestamp:   a.endTS,
		Open:           a.openPx,
		High:           a.high,
		Low:            a.low,
		Close:          a.closePx,
		Volume:         a.volume,
		DollarValue:    a.dollar,
		TickCount:      a.ticks,
	}
	if bar.Volume > 0 {
		bar.VWAP = bar.DollarValue / bar.Volume
	}
	*a = aggregator{}
	return bar, nil
}
