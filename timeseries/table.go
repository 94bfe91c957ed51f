package timeseries

import (
	"fmt"
	"iter"
	"slices"
)

// Table is an ordered, column-labeled set of samples keyed by a monotonically
// increasing independent variable, usually time. It is a pure indexed store:
// interpolation lives with the consumers (see the tablesource package).
//
// The independent column is assumed strictly increasing; producers guarantee
// that invariant and the table does not re-check it. A table is never patched
// in place, only replaced wholesale.
type Table[E Element[E]] struct {
	times    []float64
	labels   []string
	rows     [][]E
	labelIdx map[string]int
}

// NewTable builds a table from an independent column, one label per data
// column, and one row per independent entry. It validates shape only: row
// count matching the independent column, row width matching the label count,
// and unique non-empty labels.
func NewTable[E Element[E]](times []float64, labels []string, rows [][]E) (*Table[E], error) {
	if len(rows) != len(times) {
		return nil, fmt.Errorf("table has %d rows for %d independent column entries", len(rows), len(times))
	}
	labelIdx := make(map[string]int, len(labels))
	for i, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("column %d has an empty label", i)
		}
		if _, exists := labelIdx[label]; exists {
			return nil, fmt.Errorf("duplicate column label %q", label)
		}
		labelIdx[label] = i
	}
	for i, row := range rows {
		if len(row) != len(labels) {
			return nil, fmt.Errorf("row %d has %d entries for %d columns", i, len(row), len(labels))
		}
	}
	return &Table[E]{
		times:    slices.Clone(times),
		labels:   slices.Clone(labels),
		rows:     slices.Clone(rows),
		labelIdx: labelIdx,
	}, nil
}

// MustNewTable is a convenience constructor that panics on malformed input.
// Should be used for testing purposes or statically known-good tables.
func MustNewTable[E Element[E]](times []float64, labels []string, rows [][]E) *Table[E] {
	table, err := NewTable(times, labels, rows)
	if err != nil {
		panic(err)
	}
	return table
}

func (t *Table[E]) NumRows() int {
	return len(t.rows)
}

func (t *Table[E]) NumColumns() int {
	return len(t.labels)
}

// ColumnLabels returns the data column labels in column order.
func (t *Table[E]) ColumnLabels() []string {
	return slices.Clone(t.labels)
}

// IndependentColumn returns a copy of the independent column.
func (t *Table[E]) IndependentColumn() []float64 {
	return slices.Clone(t.times)
}

// IndependentRange returns the first and last entry of the independent
// column.
func (t *Table[E]) IndependentRange() (min float64, max float64, err error) {
	if len(t.times) == 0 {
		return 0, 0, EmptyTableError{}
	}
	return t.times[0], t.times[len(t.times)-1], nil
}

// ColumnIndex returns the position of the column labeled label.
func (t *Table[E]) ColumnIndex(label string) (int, error) {
	idx, ok := t.labelIdx[label]
	if !ok {
		return 0, UnknownColumnError{Label: label}
	}
	return idx, nil
}

// RowAt returns a copy of the row at position i.
func (t *Table[E]) RowAt(i int) ([]E, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("row index %d out of range for table with %d rows", i, len(t.rows))
	}
	return slices.Clone(t.rows[i]), nil
}

// ElementAt returns the element at row i, column col.
func (t *Table[E]) ElementAt(i int, col int) (E, error) {
	var zero E
	if i < 0 || i >= len(t.rows) {
		return zero, fmt.Errorf("row index %d out of range for table with %d rows", i, len(t.rows))
	}
	if col < 0 || col >= len(t.labels) {
		return zero, fmt.Errorf("column index %d out of range for table with %d columns", col, len(t.labels))
	}
	return t.rows[i][col], nil
}

// All iterates the table in row order, yielding each independent column entry
// with its row. Yielded rows are views into the table and must not be
// modified.
func (t *Table[E]) All() iter.Seq2[float64, []E] {
	return func(yield func(float64, []E) bool) {
		for i, row := range t.rows {
			if !yield(t.times[i], row) {
				return
			}
		}
	}
}

// Column iterates a single data column in row order, yielding each
// independent column entry with the column's element.
func (t *Table[E]) Column(label string) (iter.Seq2[float64, E], error) {
	col, err := t.ColumnIndex(label)
	if err != nil {
		return nil, err
	}
	return func(yield func(float64, E) bool) {
		for i, row := range t.rows {
			if !yield(t.times[i], row[col]) {
				return
			}
		}
	}, nil
}
