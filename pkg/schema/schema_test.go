// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_GetColumnByName(t *testing.T) {
	t.Parallel()

	table := &Table{
		Name: "customers",
		Columns: []Column{
			{Name: "id", DataType: "uniqueidentifier"},
			{Name: "name", DataType: "nvarchar"},
		},
	}

	col, found := table.GetColumnByName("name")
	require.True(t, found)
	require.Equal(t, "nvarchar", col.DataType)

	_, found = table.GetColumnByName("missing")
	require.False(t, found)
}

func TestTable_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilTable *Table
	require.True(t, nilTable.IsEmpty())
	require.True(t, (&Table{}).IsEmpty())
	// a table without column metadata is unusable even when named
	require.True(t, (&Table{Name: "customers"}).IsEmpty())
	require.False(t, (&Table{Name: "customers", Columns: []Column{{Name: "id"}}}).IsEmpty())
}

func TestSample_ColumnValues(t *testing.T) {
	t.Parallel()

	sample := &Sample{
		ColumnNames: []string{"id", "name"},
		Rows: [][]any{
			{int64(1), "alice"},
			{int64(2)}, // short row
			{nil, "carol"},
		},
	}

	require.Equal(t, []any{int64(1), int64(2), nil}, sample.ColumnValues(0))
	require.Equal(t, []any{"alice", nil, "carol"}, sample.ColumnValues(1))
}

func TestSample_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilSample *Sample
	require.True(t, nilSample.IsEmpty())
	require.True(t, (&Sample{}).IsEmpty())
	require.False(t, (&Sample{ColumnNames: []string{"id"}}).IsEmpty())
}
