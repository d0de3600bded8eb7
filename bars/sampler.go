package bars

import (
	"time"

	"bars_clickhouse/models"
)

// Decision is a Sampler's verdict for one observed tick.
type Decision int

const (
	// Continue: the tick belongs to the currently open bar.
	Continue Decision = iota
	// CloseAfter: the tick is the last one of the current bar; the next
	// tick starts a new bar.
	CloseAfter
	// CloseBeforeAndOpen: the tick falls in a later time window; the
	// current bar closes with its previously seen ticks and this tick
	// opens the next bar.
	CloseBeforeAndOpen
)

// Sampler decides where bar boundaries fall. Implementations zero their
// internal progress the moment they emit a close decision, so the next
// Observe starts a fresh bar. A sampler serves exactly one symbol and is not
// safe for concurrent use.
type Sampler interface {
	Observe(t models.Tick) Decision
	Reset()
}

// timeSampler closes bars on fixed wall-clock windows aligned to multiples
// of the window size (epoch-truncated, UTC). Windows with no ticks produce
// no bars.
type timeSampler struct {
	window      time.Duration
	windowStart time.Time
	open        bool
}

func newTimeSampler(window time.Duration) *timeSampler {
	return &timeSampler{window: window}
}

func (s *timeSampler) Observe(t models.Tick) Decision {
	start := t.Timestamp.Truncate(s.window)
	if !s.open {
		s.open = true
		s.windowStart = start
		return Continue
	}
	if start.Equal(s.windowStart) {
		return Continue
	}
	// The tick already belongs to the new window, so the sampler keeps it:
	// the engine closes the previous bar without it.
	s.windowStart = start
	return CloseBeforeAndOpen
}

func (s *timeSampler) Reset() {
	s.open = false
	s.windowStart = time.Time{}
}

// tickCountSampler closes a bar once it holds exactly n ticks.
type tickCountSampler struct {
	n    int
	seen int
}

func newTickCountSampler(n int) *tickCountSampler {
	return &tickCountSampler{n: n}
}

func (s *tickCountSampler) Observe(models.Tick) Decision {
	s.seen++
	if s.seen >= s.n {
		s.seen = 0
		return CloseAfter
	}
	return Continue
}

func (s *tickCountSampler) Reset() { s.seen = 0 }

// volumeSampler closes on the tick whose size pushes cumulative volume to
// the threshold. Whole-tick attribution: an overshooting tick still closes
// the bar in full and the next bar starts empty.
type volumeSampler struct {
	threshold float64
	acc       float64
}

func newVolumeSampler(threshold float64) *volumeSampler {
	return &volumeSampler{threshold: threshold}
}

func (s *volumeSampler) Observe(t models.Tick) Decision {
	s.acc += t.Size
	if s.acc >= s.threshold {
		s.acc = 0
		return CloseAfter
	}
	return Continue
}

func (s *volumeSampler) Reset() { s.acc = 0 }

// dollarSampler is volumeSampler thresholded on cumulative price*size.
type dollarSampler struct {
	threshold float64
	acc       float64
}

func newDollarSampler(threshold float64) *dollarSampler {
	return &dollarSampler{threshold: threshold}
}

func (s *dollarSampler) Observe(t models.Tick) Decision {
	s.acc += t.DollarValue()
	if s.acc >= s.threshold {
		s.acc = 0
		return CloseAfter
	}
	return Continue
}

func (s *dollarSampler) Reset() { s.acc = 0 }
