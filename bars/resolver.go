package bars

import (
	"fmt"
	"time"

	"bars_clickhouse/table"
)

// accessors exposes the four mapped columns of an input table as typed
// per-row getters. Resolution validates the mapping and schema once per
// call; per-tick access is a plain slice index.
type accessors struct {
	rows   int
	price  func(i int) float64
	size   func(i int) float64
	symbol func(i int) string
	ts     func(i int) time.Time
}

// resolveColumns checks the mapping against the table schema and builds
// accessors. A bad mapping is ErrConfiguration; a table that does not carry
// the mapped columns with usable types is ErrSchema.
func resolveColumns(t *table.Table, m ColumnMapping) (*accessors, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	price, err := floatAccessor(t, m.Price, "price_column")
	if err != nil {
		return nil, err
	}
	size, err := floatAccessor(t, m.Size, "size_column")
	if err != nil {
		return nil, err
	}

	symCol, ok := t.Column(m.Symbol)
	if !ok {
		return nil, fmt.Errorf("%w: symbol_column %q not in input", ErrSchema, m.Symbol)
	}
	if symCol.Kind != table.String {
		return nil, fmt.Errorf("%w: symbol_column %q is %s, want String", ErrSchema, m.Symbol, symCol.Kind)
	}

	tsCol, ok := t.Column(m.Timestamp)
	if !ok {
		return nil, fmt.Errorf("%w: timestamp_column %q not in input", ErrSchema, m.Timestamp)
	}
	if tsCol.Kind != table.Time {
		return nil, fmt.Errorf("%w: timestamp_column %q is %s, want Time", ErrSchema, m.Timestamp, tsCol.Kind)
	}

	return &accessors{
		rows:   t.NumRows(),
		price:  price,
		size:   size,
		symbol: func(i int) string { return symCol.Strings[i] },
		ts:     func(i int) time.Time { return tsCol.Times[i] },
	}, nil
}

// floatAccessor accepts Float64 columns directly and widens Int64 columns,
// so integer share counts work as sizes without a copy of the data.
func floatAccessor(t *table.Table, name, role string) (func(i int) float64, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q not in input", ErrSchema, role, name)
	}
	switch col.Kind {
	case table.Float64:
		return func(i int) float64 { return col.Float64s[i] }, nil
	case table.Int64:
		return func(i int) float64 { return float64(col.Int64s[i]) }, nil
	default:
		return nil, fmt.Errorf("%w: %s %q is %s, want Float64 or Int64", ErrSchema, role, name, col.Kind)
	}
}

func (a *accessors) tick(i int) (string, float64, float64, time.Time) {
	return a.symbol(i), a.price(i), a.size(i), a.ts(i)
}
