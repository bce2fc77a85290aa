// SPDX-License-Identifier: Apache-2.0

package searchindex

import (
	"github.com/searchhintio/searchhint/pkg/inference"
)

// Mapper translates inferred column descriptors into Azure AI Search field
// definitions.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// keyFieldName is the document key every index must carry. When no inferred
// column provides it, a string key field is synthesised.
const keyFieldName = "id"

// FieldMapping returns the search field definition for a column descriptor.
// Attribute defaults follow the service rules: only string fields are full
// text searchable, collections cannot be sorted, and complex fields carry no
// attributes beyond name and type.
func (m *Mapper) FieldMapping(desc *inference.ColumnDescriptor) map[string]any {
	fieldType := desc.FieldType
	elem := fieldType
	if fieldType.IsCollection() {
		elem = fieldType.Elem()
	}

	if elem == inference.FieldTypeComplexType {
		return map[string]any{
			"name": desc.Name,
			"type": fieldType.String(),
		}
	}

	return map[string]any{
		"name":        desc.Name,
		"type":        fieldType.String(),
		"key":         false,
		"retrievable": true,
		"searchable":  elem == inference.FieldTypeString,
		"filterable":  true,
		"sortable":    !fieldType.IsCollection(),
		"facetable":   elem != inference.FieldTypeGeographyPoint,
	}
}

// BuildIndexDefinition assembles a full index definition from the inferred
// column descriptors. The first string column named "id" becomes the key;
// when there is none a key field is prepended.
func (m *Mapper) BuildIndexDefinition(indexName string, descriptors []inference.ColumnDescriptor) map[string]any {
	fields := make([]map[string]any, 0, len(descriptors)+1)

	hasKey := false
	for i := range descriptors {
		field := m.FieldMapping(&descriptors[i])
		if !hasKey && descriptors[i].Name == keyFieldName &&
			descriptors[i].FieldType == inference.FieldTypeString {
			field["key"] = true
			hasKey = true
		}
		fields = append(fields, field)
	}

	if !hasKey {
		fields = append([]map[string]any{{
			"name":        keyName(descriptors),
			"type":        inference.FieldTypeString.String(),
			"key":         true,
			"retrievable": true,
			"searchable":  false,
			"filterable":  true,
			"sortable":    true,
			"facetable":   false,
		}}, fields...)
	}

	return map[string]any{
		"name":   indexName,
		"fields": fields,
	}
}

// keyName returns the name for a synthesised key field, avoiding a clash
// with an existing column (an "id" column of a non string type keeps its
// inferred definition).
func keyName(descriptors []inference.ColumnDescriptor) string {
	name := keyFieldName
	for taken(descriptors, name) {
		name = "search_" + name
	}
	return name
}

func taken(descriptors []inference.ColumnDescriptor, name string) bool {
	for i := range descriptors {
		if descriptors[i].Name == name {
			return true
		}
	}
	return false
}
