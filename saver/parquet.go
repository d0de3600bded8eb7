package saver

import (
	"github.com/parquet-go/parquet-go"

	"bars_clickhouse/models"
)

// ParquetSaver writes bars as Parquet using the struct tags on models.Bar.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(bars []models.Bar, path string) error {
	return parquet.WriteFile(path, bars)
}
