package timeseries

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTable_ValidatesShape(t *testing.T) {
	times := []float64{1, 2}
	labels := []string{"v1", "v2"}
	rows := [][]Real{{10, 20}, {20, 40}}

	_, err := NewTable(times, labels, rows)
	require.NoError(t, err)

	_, err = NewTable([]float64{1}, labels, rows)
	require.Error(t, err, "row count must match independent column length")

	_, err = NewTable(times, labels, [][]Real{{10, 20}, {20}})
	require.Error(t, err, "every row must have one entry per column")

	_, err = NewTable(times, []string{"v1", "v1"}, rows)
	require.Error(t, err, "column labels must be unique")

	_, err = NewTable(times, []string{"v1", ""}, rows)
	require.Error(t, err, "column labels must be non-empty")
}

func TestTable_IndexedAccess(t *testing.T) {
	table := MustNewTable(
		[]float64{1, 2, 3},
		[]string{"v1", "v2"},
		[][]Real{{10, 20}, {20, 40}, {30, 60}},
	)

	require.Equal(t, 3, table.NumRows())
	require.Equal(t, 2, table.NumColumns())
	require.Equal(t, []string{"v1", "v2"}, table.ColumnLabels())
	require.Equal(t, []float64{1, 2, 3}, table.IndependentColumn())

	minTime, maxTime, err := table.IndependentRange()
	require.NoError(t, err)
	require.Equal(t, 1.0, minTime)
	require.Equal(t, 3.0, maxTime)

	idx, err := table.ColumnIndex("v2")
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	idx, err = table.ColumnIndex("v1")
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	_, err = table.ColumnIndex("nope")
	var unknownCol UnknownColumnError
	require.ErrorAs(t, err, &unknownCol)
	require.Equal(t, "nope", unknownCol.Label)

	row, err := table.RowAt(1)
	require.NoError(t, err)
	require.Equal(t, []Real{20, 40}, row)

	elt, err := table.ElementAt(2, 1)
	require.NoError(t, err)
	require.Equal(t, Real(60), elt)

	_, err = table.RowAt(3)
	require.Error(t, err)
	_, err = table.RowAt(-1)
	require.Error(t, err)
	_, err = table.ElementAt(0, 2)
	require.Error(t, err)
}

func TestTable_IndependentRangeEmpty(t *testing.T) {
	table := MustNewTable[Real](nil, []string{"v1"}, nil)

	_, _, err := table.IndependentRange()
	var emptyTable EmptyTableError
	require.ErrorAs(t, err, &emptyTable)
}

func TestTable_RowAtReturnsCopy(t *testing.T) {
	table := MustNewTable([]float64{1}, []string{"v1"}, [][]Real{{10}})

	row, err := table.RowAt(0)
	require.NoError(t, err)
	row[0] = 99

	elt, err := table.ElementAt(0, 0)
	require.NoError(t, err)
	require.Equal(t, Real(10), elt)
}

func TestTable_Iteration(t *testing.T) {
	table := MustNewTable(
		[]float64{1, 2, 3},
		[]string{"v1", "v2"},
		[][]Real{{10, 20}, {20, 40}, {30, 60}},
	)

	var gotTimes []float64
	var gotFirst []Real
	for rowTime, row := range table.All() {
		gotTimes = append(gotTimes, rowTime)
		gotFirst = append(gotFirst, row[0])
	}
	require.Equal(t, []float64{1, 2, 3}, gotTimes)
	require.Equal(t, []Real{10, 20, 30}, gotFirst)

	column, err := table.Column("v2")
	require.NoError(t, err)
	var gotCol []Real
	for _, v := range column {
		gotCol = append(gotCol, v)
	}
	require.Equal(t, []Real{20, 40, 60}, gotCol)

	_, err = table.Column("nope")
	require.Error(t, err)
}

func TestErrorMessagesCarryDiagnostics(t *testing.T) {
	require.Contains(t, TimeOutOfRangeError{Time: 5, Min: 1, Max: 3}.Error(), "min = 1 max = 3")
	require.Contains(t, UnknownColumnError{Label: "v9"}.Error(), "v9")
	require.Contains(t, DuplicateChannelError{Label: "v1"}.Error(), "v1")
	require.Equal(t, "table has no rows", EmptyTableError{}.Error())
}
