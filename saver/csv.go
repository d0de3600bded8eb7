package saver

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"bars_clickhouse/models"
)

// CSVSaver writes bars as CSV with a header row matching the bar table
// column order.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(bars []models.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"symbol", "start_timestamp", "end_timestamp",
		"open", "high", "low", "close",
		"volume", "dollar_value", "tick_count", "vwap",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, b := range bars {
		if err := w.Write([]string{
			b.Symbol,
			b.StartTimestamp.Format(time.RFC3339Nano),
			b.EndTimestamp.Format(time.RFC3339Nano),
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			floatStr(b.Volume),
			floatStr(b.DollarValue),
			strconv.FormatInt(b.TickCount, 10),
			floatStr(b.VWAP),
		}); err != nil {
			return err
		}
	}
	return w.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
