package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/FriedlDeGroote/opensim-core/timeseries"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimeColumn string // Column name holding the independent variable (default: "time")
	HasHeader  bool   // Whether the CSV has a header row (default: true)
	Delimiter  rune   // Field delimiter (default: ',')
	SkipRows   int    // Number of rows to skip at the start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn: timeLabel,
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// ReadCSV parses a CSV stream into a table. With a header row, the column
// named by TimeColumn becomes the independent column and every other column a
// data column. Without one, the first column is taken as time and the data
// columns are labeled col1..colN.
func ReadCSV(r io.Reader, opts *CSVOptions) (*timeseries.Table[timeseries.Real], error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	// Field counts are validated against the label set below, not by the reader
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("failed skipping csv row %d: %w", i, err)
		}
	}

	timeIdx := 0
	var labels []string
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed reading csv header: %w", err)
		}
		timeIdx = -1
		for i, name := range header {
			if name == opts.TimeColumn {
				timeIdx = i
				continue
			}
			labels = append(labels, name)
		}
		if timeIdx < 0 {
			return nil, fmt.Errorf("csv header has no %q column", opts.TimeColumn)
		}
	}

	var times []float64
	var rows [][]timeseries.Real
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed reading csv row %d: %w", len(rows), err)
		}
		if !opts.HasHeader && labels == nil {
			// Headerless files: first column is time
			for i := 1; i < len(record); i++ {
				labels = append(labels, fmt.Sprintf("col%d", i))
			}
		}
		if len(record) != len(labels)+1 {
			return nil, fmt.Errorf("csv row %d has %d fields for %d columns", len(rows), len(record), len(labels)+1)
		}
		row := make([]timeseries.Real, 0, len(labels))
		var rowTime float64
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q in csv row %d: %w", field, len(rows), err)
			}
			if i == timeIdx {
				rowTime = v
			} else {
				row = append(row, timeseries.Real(v))
			}
		}
		times = append(times, rowTime)
		rows = append(rows, row)
	}

	return timeseries.NewTable(times, labels, rows)
}

// LoadCSV reads a CSV file from disk.
func LoadCSV(path string, opts *CSVOptions) (*timeseries.Table[timeseries.Real], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening csv file %s: %w", path, err)
	}
	defer closeQuietly(f, path)
	return ReadCSV(f, opts)
}
