package models

import "time"

// Bar is an aggregated OHLCV summary over a contiguous run of ticks.
// StartTimestamp/EndTimestamp are the timestamps of the first and last
// contributing tick, not window edges.
type Bar struct {
	Symbol         string    `ch:"symbol" json:"symbol" parquet:"symbol"`
	StartTimestamp time.Time `ch:"start_timestamp" json:"start_timestamp" parquet:"start_timestamp"`
	EndTimestamp   time.Time `ch:"end_timestamp" json:"end_timestamp" parquet:"end_timestamp"`
	Open           float64   `ch:"open" json:"open" parquet:"open"`
	High           float64   `ch:"high" json:"high" parquet:"high"`
	Low            float64   `ch:"low" json:"low" parquet:"low"`
	Close          float64   `ch:"close" json:"close" parquet:"close"`
	Volume         float64   `ch:"volume" json:"volume" parquet:"volume"`
	DollarValue    float64   `ch:"dollar_value" json:"dollar_value" parquet:"dollar_value"`
	TickCount      int64     `ch:"tick_count" json:"tick_count" parquet:"tick_count"`
	VWAP           float64   `ch:"vwap" json:"vwap" parquet:"vwap"`
}
