package saver

import (
	"strings"

	"bars_clickhouse/models"
)

// BarSaver writes a batch of built bars to a file. Implementations are
// stateless; the caller owns paths and directories.
type BarSaver interface {
	Save(bars []models.Bar, path string) error
	Extension() string
}

// New returns the saver for a format (csv, json, parquet), or nil when the
// format is unknown.
func New(format string) BarSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}
