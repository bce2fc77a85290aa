// SPDX-License-Identifier: Apache-2.0

package schema

// Table contains the catalog metadata for a single table like asset.
type Table struct {
	Name          string   `json:"name"`
	QualifiedName string   `json:"qualified_name"`
	GUID          string   `json:"guid"`
	EntityType    string   `json:"entity_type"`
	Columns       []Column `json:"columns"`
}

// Column is the column metadata as harvested from the catalog. DataType is
// the raw source type name (e.g. "nvarchar(50)", "bigint") and can be empty
// when the catalog has no declared type for the column. Nullable is nil when
// the catalog does not know.
type Column struct {
	Name      string `json:"name"`
	DataType  string `json:"data_type"`
	Nullable  *bool  `json:"nullable,omitempty"`
	MaxLength *int   `json:"max_length,omitempty"`
	Precision *int   `json:"precision,omitempty"`
	Scale     *int   `json:"scale,omitempty"`
}

// IsEmpty reports whether the table carries no usable column metadata.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Columns) == 0
}

func (t *Table) GetColumnByName(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
