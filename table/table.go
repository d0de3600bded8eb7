package table

import (
	"fmt"
	"time"
)

// Kind identifies the value type carried by a Column.
type Kind int

const (
	Float64 Kind = iota
	Int64
	String
	Time
)

func (k Kind) String() string {
	switch k {
	case Float64:
		return "Float64"
	case Int64:
		return "Int64"
	case String:
		return "String"
	case Time:
		return "Time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is one named, typed column. Only the slice matching Kind is populated.
type Column struct {
	Name     string
	Kind     Kind
	Float64s []float64
	Int64s   []int64
	Strings  []string
	Times    []time.Time
}

func FloatColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Float64, Float64s: values}
}

func IntColumn(name string, values []int64) Column {
	return Column{Name: name, Kind: Int64, Int64s: values}
}

func StringColumn(name string, values []string) Column {
	return Column{Name: name, Kind: String, Strings: values}
}

func TimeColumn(name string, values []time.Time) Column {
	return Column{Name: name, Kind: Time, Times: values}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.Kind {
	case Float64:
		return len(c.Float64s)
	case Int64:
		return len(c.Int64s)
	case String:
		return len(c.Strings)
	case Time:
		return len(c.Times)
	default:
		return 0
	}
}

// Table is a set of equal-length named columns. It is the tabular exchange
// format between the storage layer and the bar engine; treat it as read-only
// once constructed.
type Table struct {
	cols   []Column
	byName map[string]int
	rows   int
}

// New builds a table from columns. Column names must be unique and all
// columns must have the same length.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		cols:   cols,
		byName: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("table: column %d has empty name", i)
		}
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", c.Name)
		}
		t.byName[c.Name] = i
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("table: column %q has %d rows, want %d", c.Name, c.Len(), t.rows)
		}
	}
	return t, nil
}

// MustNew is New, panicking on invalid columns. Intended for literals in tests
// and fixtures.
func MustNew(cols ...Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns column names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}
