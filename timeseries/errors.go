package timeseries

import "fmt"

// EmptyTableError is returned when a query is attempted against a table with
// zero rows.
type EmptyTableError struct{}

func (EmptyTableError) Error() string {
	return "table has no rows"
}

// TimeOutOfRangeError is returned when a query time falls outside the range
// spanned by the table's independent column. The table never clamps or
// extrapolates.
type TimeOutOfRangeError struct {
	Time float64
	Min  float64
	Max  float64
}

func (e TimeOutOfRangeError) Error() string {
	return fmt.Sprintf("time %v out of range: min = %v max = %v", e.Time, e.Min, e.Max)
}

// UnknownColumnError is returned when a column label is not present in the
// current column set.
type UnknownColumnError struct {
	Label string
}

func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("no column labeled %q", e.Label)
}

// DuplicateChannelError reports an attempt to register the same channel label
// twice without an intervening clear. Under correct use of table replacement
// this is unreachable.
type DuplicateChannelError struct {
	Label string
}

func (e DuplicateChannelError) Error() string {
	return fmt.Sprintf("channel %q already registered", e.Label)
}
