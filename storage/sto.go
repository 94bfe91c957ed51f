// Package storage loads and saves the tables served by a table source. It is
// the producer collaborator of the core: files and query results come in,
// timeseries tables come out.
package storage

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/FriedlDeGroote/opensim-core/timeseries"
)

const timeLabel = "time"

// ReadSTO parses an OpenSim storage (.sto) stream into a table. Both header
// flavors are accepted: the legacy one (bare name line plus nRows/nColumns)
// and the key=value one, where nRows/nColumns are optional. When present they
// are cross-checked against the data section. The first column must be the
// independent "time" column.
func ReadSTO(r io.Reader) (*timeseries.Table[timeseries.Real], error) {
	scanner := bufio.NewScanner(r)

	meta := make(map[string]string)
	foundEndHeader := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "endheader" {
			foundEndHeader = true
			break
		}
		if key, value, ok := strings.Cut(line, "="); ok {
			meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
		} else if _, named := meta["name"]; !named {
			// Legacy headers open with a bare name line
			meta["name"] = line
		}
	}
	if !foundEndHeader {
		return nil, fmt.Errorf("storage header is not terminated by endheader")
	}

	var labels []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		labels = strings.Fields(line)
		break
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("storage has no column label line")
	}
	if labels[0] != timeLabel {
		return nil, fmt.Errorf("first storage column must be %q, got %q", timeLabel, labels[0])
	}

	var times []float64
	var rows [][]timeseries.Real
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(labels) {
			return nil, fmt.Errorf("storage row %d has %d values for %d columns", len(rows), len(fields), len(labels))
		}
		rowTime, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time in storage row %d: %w", len(rows), err)
		}
		row := make([]timeseries.Real, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value in storage row %d, column %q: %w", len(rows), labels[i+1], err)
			}
			row[i] = timeseries.Real(v)
		}
		times = append(times, rowTime)
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading storage data: %w", err)
	}

	if v, ok := meta["nRows"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n != len(rows) {
			return nil, fmt.Errorf("storage header declares nRows=%s but %d rows were read", v, len(rows))
		}
	}
	if v, ok := meta["nColumns"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n != len(labels) {
			return nil, fmt.Errorf("storage header declares nColumns=%s but %d columns were read", v, len(labels))
		}
	}

	return timeseries.NewTable(times, labels[1:], rows)
}

// WriteSTO writes a table as a .sto stream with a key=value header.
func WriteSTO(w io.Writer, name string, table *timeseries.Table[timeseries.Real]) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "name=%s\n", name)
	fmt.Fprintf(bw, "version=1\n")
	fmt.Fprintf(bw, "nRows=%d\n", table.NumRows())
	fmt.Fprintf(bw, "nColumns=%d\n", table.NumColumns()+1)
	fmt.Fprintf(bw, "endheader\n")

	bw.WriteString(timeLabel)
	for _, label := range table.ColumnLabels() {
		bw.WriteByte('\t')
		bw.WriteString(label)
	}
	bw.WriteByte('\n')

	for rowTime, row := range table.All() {
		bw.WriteString(strconv.FormatFloat(rowTime, 'g', -1, 64))
		for _, v := range row {
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed writing storage data: %w", err)
	}
	return nil
}

// LoadSTO reads a .sto file from disk.
func LoadSTO(path string) (*timeseries.Table[timeseries.Real], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening storage file %s: %w", path, err)
	}
	defer closeQuietly(f, path)
	return ReadSTO(f)
}

// SaveSTO writes a table to a .sto file on disk.
func SaveSTO(path string, name string, table *timeseries.Table[timeseries.Real]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed creating storage file %s: %w", path, err)
	}
	if err := WriteSTO(f, name, table); err != nil {
		closeQuietly(f, path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed closing storage file %s: %w", path, err)
	}
	return nil
}

func closeQuietly(c io.Closer, path string) {
	if err := c.Close(); err != nil {
		slog.Warn(fmt.Sprintf("error closing storage file %s: %v", path, err))
	}
}
