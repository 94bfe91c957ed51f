package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FriedlDeGroote/opensim-core/internal/util"
	"github.com/FriedlDeGroote/opensim-core/timeseries"
)

// QueryTable builds a table from a SQL result set. The first selected column
// is the independent time column and every other column a numeric data
// column; the query is expected to order by time ascending.
func QueryTable(ctx context.Context, db *sql.DB, query string, args ...any) (*timeseries.Table[timeseries.Real], error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed opening table query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed reading table query columns: %w", err)
	}
	if len(cols) < 1 {
		return nil, fmt.Errorf("table query must select a time column first")
	}

	var times []float64
	var data [][]timeseries.Real
	for rows.Next() {
		raw := make([]any, len(cols))
		scanTargets := make([]any, len(cols))
		for i := range raw {
			scanTargets[i] = &raw[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("failed scanning table query row: %w", err)
		}
		rowTime, err := util.AnyToFloat64(raw[0])
		if err != nil {
			return nil, fmt.Errorf("time column %q: %w", cols[0], err)
		}
		row := make([]timeseries.Real, len(cols)-1)
		for i, cell := range raw[1:] {
			v, err := util.AnyToFloat64(cell)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", cols[i+1], err)
			}
			row[i] = timeseries.Real(v)
		}
		times = append(times, rowTime)
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading table query rows: %w", err)
	}

	return timeseries.NewTable(times, cols[1:], data)
}
