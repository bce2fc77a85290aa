// SPDX-License-Identifier: Apache-2.0

package inference

import "strings"

// FieldType is the target search index field type for a column. The values
// are the literal EDM tokens understood by the search service, so the type
// serializes to the wire format directly.
type FieldType string

const (
	FieldTypeString         = FieldType("Edm.String")
	FieldTypeInt32          = FieldType("Edm.Int32")
	FieldTypeInt64          = FieldType("Edm.Int64")
	FieldTypeDouble         = FieldType("Edm.Double")
	FieldTypeBoolean        = FieldType("Edm.Boolean")
	FieldTypeDateTimeOffset = FieldType("Edm.DateTimeOffset")
	FieldTypeGeographyPoint = FieldType("Edm.GeographyPoint")
	FieldTypeComplexType    = FieldType("Edm.ComplexType")

	FieldTypeCollectionString         = FieldType("Collection(Edm.String)")
	FieldTypeCollectionInt32          = FieldType("Collection(Edm.Int32)")
	FieldTypeCollectionInt64          = FieldType("Collection(Edm.Int64)")
	FieldTypeCollectionDouble         = FieldType("Collection(Edm.Double)")
	FieldTypeCollectionBoolean        = FieldType("Collection(Edm.Boolean)")
	FieldTypeCollectionDateTimeOffset = FieldType("Collection(Edm.DateTimeOffset)")
	FieldTypeCollectionGeographyPoint = FieldType("Collection(Edm.GeographyPoint)")
	FieldTypeCollectionComplexType    = FieldType("Collection(Edm.ComplexType)")
)

const (
	collectionPrefix = "Collection("
	collectionSuffix = ")"
)

func (t FieldType) String() string {
	return string(t)
}

func (t FieldType) IsCollection() bool {
	return strings.HasPrefix(string(t), collectionPrefix)
}

// Elem returns the element type of a collection field type. For scalar field
// types it returns the type itself.
func (t FieldType) Elem() FieldType {
	if !t.IsCollection() {
		return t
	}
	return FieldType(strings.TrimSuffix(strings.TrimPrefix(string(t), collectionPrefix), collectionSuffix))
}

// CollectionOf returns the collection variant of the given field type.
// Collection types are returned unchanged.
func CollectionOf(t FieldType) FieldType {
	if t.IsCollection() {
		return t
	}
	return FieldType(collectionPrefix + string(t) + collectionSuffix)
}
