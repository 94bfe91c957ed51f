// Package tablesource turns a timeseries.Table into a queryable source node:
// a full-row endpoint plus one named channel per table column, each answering
// point-in-time queries by exact lookup or linear interpolation.
package tablesource

import (
	"fmt"
	"sort"

	"github.com/FriedlDeGroote/opensim-core/internal/util"
	"github.com/FriedlDeGroote/opensim-core/timeseries"
)

// TableSource owns exactly one table and answers time-indexed queries against
// it. Queries never mutate the source; replacing the table rebuilds the
// channel registry. Callers are expected to serialize queries against
// replacement, the source itself holds no locks.
type TableSource[E timeseries.Element[E]] struct {
	table    *timeseries.Table[E]
	times    []float64
	channels *ChannelRegistry[E]
}

// New constructs a source holding table, with one channel registered per
// table column.
func New[E timeseries.Element[E]](table *timeseries.Table[E]) (*TableSource[E], error) {
	s := &TableSource[E]{}
	if err := s.ReplaceTable(table); err != nil {
		return nil, err
	}
	return s, nil
}

// Table returns the table the source currently holds.
func (s *TableSource[E]) Table() *timeseries.Table[E] {
	return s.table
}

// Channels returns the current channel registry. Replacing the table installs
// a fresh registry, so consumers must re-fetch (and re-resolve their
// channels) after a replacement.
func (s *TableSource[E]) Channels() *ChannelRegistry[E] {
	return s.channels
}

// ReplaceTable discards the held table, adopts the replacement and rebuilds
// the channel registry to mirror its column set. The swap is transactional:
// if the replacement registry cannot be built, the previously held table and
// channels are left untouched.
func (s *TableSource[E]) ReplaceTable(table *timeseries.Table[E]) error {
	if table == nil {
		return fmt.Errorf("table source requires a table")
	}
	next := newChannelRegistry(s)
	for _, label := range table.ColumnLabels() {
		if err := next.AddChannel(label); err != nil {
			return fmt.Errorf("failed rebuilding channels for replacement table: %w", err)
		}
	}
	s.table = table
	s.times = table.IndependentColumn()
	s.channels = next
	return nil
}

// ColumnAtTime evaluates the column labeled label at the given time,
// interpolating linearly between the two bracketing samples when the time
// falls between stored entries.
func (s *TableSource[E]) ColumnAtTime(label string, time float64) (E, error) {
	col, err := s.table.ColumnIndex(label)
	if err != nil {
		return util.DefaultValue[E](), err
	}
	idx, fraction, exact, err := s.locate(time)
	if err != nil {
		return util.DefaultValue[E](), err
	}
	if exact {
		return s.table.ElementAt(idx, col)
	}
	prev, err := s.table.ElementAt(idx-1, col)
	if err != nil {
		return util.DefaultValue[E](), err
	}
	next, err := s.table.ElementAt(idx, col)
	if err != nil {
		return util.DefaultValue[E](), err
	}
	return timeseries.Lerp(prev, next, fraction), nil
}

// RowAtTime evaluates the full row at the given time. Every column is
// interpolated in lockstep: the same bracketing samples and the same fraction.
func (s *TableSource[E]) RowAtTime(time float64) ([]E, error) {
	idx, fraction, exact, err := s.locate(time)
	if err != nil {
		return nil, err
	}
	if exact {
		return s.table.RowAt(idx)
	}
	prev, err := s.table.RowAt(idx - 1)
	if err != nil {
		return nil, err
	}
	next, err := s.table.RowAt(idx)
	if err != nil {
		return nil, err
	}
	row := make([]E, len(prev))
	for i := range prev {
		row[i] = timeseries.Lerp(prev[i], next[i], fraction)
	}
	return row, nil
}

// locate finds the samples bracketing time in the independent column. When
// exact is true the sample at idx is to be returned verbatim; otherwise the
// samples at idx-1 and idx bracket time and fraction is the interpolation
// factor between them. Times outside [min, max] are rejected, never clamped.
func (s *TableSource[E]) locate(time float64) (idx int, fraction float64, exact bool, err error) {
	n := len(s.times)
	if n == 0 {
		return 0, 0, false, timeseries.EmptyTableError{}
	}
	min, max := s.times[0], s.times[n-1]
	if time < min || time > max {
		return 0, 0, false, timeseries.TimeOutOfRangeError{Time: time, Min: min, Max: max}
	}
	idx = sort.Search(n, func(i int) bool { return s.times[i] >= time })
	switch {
	case idx == 0:
		// Only reachable when time equals the first sample's time: anything
		// smaller was already rejected above.
		return 0, 0, true, nil
	case idx == n:
		// Floating-point edge at the upper boundary, equivalent to an exact
		// hit on the last sample.
		return n - 1, 0, true, nil
	case s.times[idx] == time:
		// Exact hit, no interpolation for lattice-aligned queries.
		return idx, 0, true, nil
	}
	prevTime, nextTime := s.times[idx-1], s.times[idx]
	return idx, (time - prevTime) / (nextTime - prevTime), false, nil
}
