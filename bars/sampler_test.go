package bars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bars_clickhouse/models"
)

func tick(ts time.Time, price, size float64) models.Tick {
	return models.Tick{Timestamp: ts, Symbol: "TEST", Price: price, Size: size}
}

func TestTimeSamplerWindowBoundaries(t *testing.T) {
	s := newTimeSampler(15 * time.Minute)
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, Continue, s.Observe(tick(base, 10, 1)))
	assert.Equal(t, Continue, s.Observe(tick(base.Add(14*time.Minute), 10, 1)))
	// First tick of the next window closes the previous bar without itself.
	assert.Equal(t, CloseBeforeAndOpen, s.Observe(tick(base.Add(15*time.Minute), 10, 1)))
	// The triggering tick already opened the new window.
	assert.Equal(t, Continue, s.Observe(tick(base.Add(16*time.Minute), 10, 1)))
}

func TestTimeSamplerSkipsEmptyWindows(t *testing.T) {
	s := newTimeSampler(time.Minute)
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, Continue, s.Observe(tick(base, 10, 1)))
	// A gap of several empty windows still yields a single close decision.
	assert.Equal(t, CloseBeforeAndOpen, s.Observe(tick(base.Add(10*time.Minute), 10, 1)))
	assert.Equal(t, Continue, s.Observe(tick(base.Add(10*time.Minute+30*time.Second), 10, 1)))
}

func TestTimeSamplerReset(t *testing.T) {
	s := newTimeSampler(time.Minute)
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, Continue, s.Observe(tick(base, 10, 1)))
	s.Reset()
	// After a reset any timestamp starts a fresh window, even an earlier one.
	assert.Equal(t, Continue, s.Observe(tick(base.Add(-time.Hour), 10, 1)))
}

func TestTickCountSampler(t *testing.T) {
	s := newTickCountSampler(3)
	ts := time.Unix(0, 0)

	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 1)))
	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 1)))
	assert.Equal(t, CloseAfter, s.Observe(tick(ts, 10, 1)))
	// Counter zeroed by the close decision.
	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 1)))
}

func TestVolumeSamplerOvershoot(t *testing.T) {
	s := newVolumeSampler(10)
	ts := time.Unix(0, 0)

	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 4)))
	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 5)))
	// 4+5+8 = 17 >= 10: the overshooting tick closes the bar in full.
	assert.Equal(t, CloseAfter, s.Observe(tick(ts, 10, 8)))
	// The next bar starts from zero, not from the overshoot remainder.
	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 9)))
	assert.Equal(t, CloseAfter, s.Observe(tick(ts, 10, 1)))
}

func TestDollarSampler(t *testing.T) {
	s := newDollarSampler(100)
	ts := time.Unix(0, 0)

	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 4)))
	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 5)))
	assert.Equal(t, CloseAfter, s.Observe(tick(ts, 10, 2)))
	assert.Equal(t, Continue, s.Observe(tick(ts, 10, 9)))
}

func TestSamplerReset(t *testing.T) {
	v := newVolumeSampler(10)
	v.Observe(tick(time.Unix(0, 0), 10, 9))
	v.Reset()
	assert.Equal(t, Continue, v.Observe(tick(time.Unix(1, 0), 10, 9)))

	d := newDollarSampler(100)
	d.Observe(tick(time.Unix(0, 0), 10, 9))
	d.Reset()
	assert.Equal(t, Continue, d.Observe(tick(time.Unix(1, 0), 10, 9)))

	c := newTickCountSampler(2)
	c.Observe(tick(time.Unix(0, 0), 10, 1))
	c.Reset()
	assert.Equal(t, Continue, c.Observe(tick(time.Unix(1, 0), 10, 1)))
}
