// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"sort"

	"github.com/searchhintio/searchhint/pkg/schema"
)

// Entity is the Atlas entity payload for a table like asset. Column metadata
// lives in the referred entities, keyed by column GUID; the relationship
// attributes of the main entity carry the column order.
type Entity struct {
	Entity           entityBody                `json:"entity"`
	ReferredEntities map[string]referredEntity `json:"referredEntities"`
}

type entityBody struct {
	TypeName               string                 `json:"typeName"`
	GUID                   string                 `json:"guid"`
	Attributes             entityAttributes       `json:"attributes"`
	RelationshipAttributes relationshipAttributes `json:"relationshipAttributes"`
}

type relationshipAttributes struct {
	Columns []objectID `json:"columns"`
}

type entityAttributes struct {
	Name          string `json:"name"`
	QualifiedName string `json:"qualifiedName"`
}

type objectID struct {
	GUID string `json:"guid"`
}

type referredEntity struct {
	TypeName   string           `json:"typeName"`
	GUID       string           `json:"guid"`
	Attributes columnAttributes `json:"attributes"`
}

type columnAttributes struct {
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	IsNullable *bool  `json:"isNullable"`
	MaxLength  *int   `json:"maxLength"`
	Precision  *int   `json:"precision"`
	Scale      *int   `json:"scale"`
}

// ToTable extracts the table schema from the entity: one column per referred
// entity that carries a name and a data type. Column order follows the
// relationship attributes; referred entities without a relationship entry are
// appended in name order so the output stays deterministic.
func (e *Entity) ToTable() *schema.Table {
	table := &schema.Table{
		Name:          e.Entity.Attributes.Name,
		QualifiedName: e.Entity.Attributes.QualifiedName,
		GUID:          e.Entity.GUID,
		EntityType:    e.Entity.TypeName,
	}

	seen := make(map[string]struct{}, len(e.ReferredEntities))
	for _, ref := range e.Entity.RelationshipAttributes.Columns {
		referred, found := e.ReferredEntities[ref.GUID]
		if !found {
			continue
		}
		seen[ref.GUID] = struct{}{}
		if col, ok := referred.toColumn(); ok {
			table.Columns = append(table.Columns, col)
		}
	}

	remaining := make([]schema.Column, 0, len(e.ReferredEntities))
	for guid, referred := range e.ReferredEntities {
		if _, done := seen[guid]; done {
			continue
		}
		if col, ok := referred.toColumn(); ok {
			remaining = append(remaining, col)
		}
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].Name < remaining[j].Name })
	table.Columns = append(table.Columns, remaining...)

	return table
}

func (r *referredEntity) toColumn() (schema.Column, bool) {
	attrs := r.Attributes
	if attrs.Name == "" {
		return schema.Column{}, false
	}
	return schema.Column{
		Name:      attrs.Name,
		DataType:  attrs.DataType,
		Nullable:  attrs.IsNullable,
		MaxLength: attrs.MaxLength,
		Precision: attrs.Precision,
		Scale:     attrs.Scale,
	}, true
}
