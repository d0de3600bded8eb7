package bars

import (
	"fmt"
	"sync"
)

// ColumnMapping names the input table fields holding price, size, symbol and
// timestamp.
type ColumnMapping struct {
	Price     string
	Size      string
	Symbol    string
	Timestamp string
}

func defaultMapping() ColumnMapping {
	return ColumnMapping{
		Price:     "price",
		Size:      "size",
		Symbol:    "symbol",
		Timestamp: "timestamp",
	}
}

func (m ColumnMapping) validate() error {
	fields := map[string]string{
		"price_column":     m.Price,
		"size_column":      m.Size,
		"symbol_column":    m.Symbol,
		"timestamp_column": m.Timestamp,
	}
	seen := make(map[string]string, len(fields))
	for field, name := range fields {
		if name == "" {
			return fmt.Errorf("%w: %s is empty", ErrConfiguration, field)
		}
		if other, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s and %s both map to %q", ErrConfiguration, other, field, name)
		}
		seen[name] = field
	}
	return nil
}

// Process-wide default mapping. Entry points snapshot it once at call entry;
// callers must not mutate it while a transformation is in flight.
var defaults = struct {
	sync.RWMutex
	m ColumnMapping
}{m: defaultMapping()}

// SetColumns establishes the process-wide default column mapping. All four
// names must be distinct and non-empty.
func SetColumns(price, size, symbol, timestamp string) error {
	m := ColumnMapping{Price: price, Size: size, Symbol: symbol, Timestamp: timestamp}
	if err := m.validate(); err != nil {
		return err
	}
	defaults.Lock()
	defaults.m = m
	defaults.Unlock()
	return nil
}

// DefaultColumns returns a snapshot of the process-wide default mapping.
func DefaultColumns() ColumnMapping {
	defaults.RLock()
	defer defaults.RUnlock()
	return defaults.m
}

// ResetColumns restores the built-in mapping (price/size/symbol/timestamp).
func ResetColumns() {
	defaults.Lock()
	defaults.m = defaultMapping()
	defaults.Unlock()
}
