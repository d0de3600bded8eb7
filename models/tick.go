package models

import "time"

// Tick is a single trade execution. Ticks are immutable once read from the
// storage layer; the bar engine never mutates them.
type Tick struct {
	Timestamp time.Time `ch:"timestamp"`
	Symbol    string    `ch:"symbol"`
	Price     float64   `ch:"price"`
	Size      float64   `ch:"size"`
}

// DollarValue is the notional traded by this tick.
func (t Tick) DollarValue() float64 {
	return t.Price * t.Size
}
