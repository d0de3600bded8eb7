package models

import "time"

// BuildStats summarizes one bar-construction run.
type BuildStats struct {
	RunID        string
	Symbols      int
	TicksIn      int
	BarsOut      int
	DroppedTicks int64
	Elapsed      time.Duration
}
