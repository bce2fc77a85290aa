// SPDX-License-Identifier: Apache-2.0

package schema

// Sample is an in memory tabular sample of a table's data. Rows are ordered
// as read from the source, cells are positional with respect to ColumnNames.
// Absent values are represented as nil cells. Collection valued cells are
// represented as []any.
type Sample struct {
	ColumnNames []string
	Rows        [][]any
}

// ColumnValues returns the cell values of the column at the given position,
// one per row, preserving row order. Rows shorter than the column position
// contribute a nil cell.
func (s *Sample) ColumnValues(idx int) []any {
	values := make([]any, 0, len(s.Rows))
	for _, row := range s.Rows {
		if idx >= len(row) {
			values = append(values, nil)
			continue
		}
		values = append(values, row[idx])
	}
	return values
}

func (s *Sample) IsEmpty() bool {
	return s == nil || len(s.ColumnNames) == 0
}
