// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"github.com/searchhintio/searchhint/pkg/schema"
)

// ColumnDescriptor is the finished classification output for one column. It
// is immutable once produced and owned by the caller.
type ColumnDescriptor struct {
	Name         string    `json:"name"`
	FieldType    FieldType `json:"field_type"`
	Nullable     bool      `json:"nullable"`
	IsCollection bool      `json:"is_collection"`
	SampleValues []any     `json:"sample_values,omitempty"`
}

// maxSampleValues is how many non absent values per column are kept as
// classifier evidence.
const maxSampleValues = 10

// Builder assembles column evidence from a tabular sample or from catalog
// metadata and classifies it. It holds no mutable state and is safe for
// concurrent use on independent inputs.
type Builder struct {
	classifier *Classifier
}

func NewBuilder(classifier *Classifier) *Builder {
	return &Builder{
		classifier: classifier,
	}
}

// BuildColumnDescriptors produces one descriptor per column of the sample,
// preserving column order. It never fails: a column whose evidence cannot be
// classified resolves to Edm.String.
func (b *Builder) BuildColumnDescriptors(sample *schema.Sample) []ColumnDescriptor {
	if sample.IsEmpty() {
		return nil
	}

	descriptors := make([]ColumnDescriptor, 0, len(sample.ColumnNames))
	for i, name := range sample.ColumnNames {
		descriptors = append(descriptors, b.buildColumnDescriptor(name, sample.ColumnValues(i)))
	}
	return descriptors
}

func (b *Builder) buildColumnDescriptor(name string, values []any) ColumnDescriptor {
	nullable := false
	sampleValues := make([]any, 0, maxSampleValues)
	for _, v := range values {
		if v == nil {
			nullable = true
			continue
		}
		if len(sampleValues) < maxSampleValues {
			sampleValues = append(sampleValues, v)
		}
	}

	// a column is collection valued if the first observed value is itself a
	// multi valued container rather than a scalar
	isCollection := len(sampleValues) > 0 && KindOf(sampleValues[0]) == KindContainer

	evidence := Evidence{
		SampleValues: sampleValues,
		IsCollection: isCollection,
	}

	return ColumnDescriptor{
		Name:         name,
		FieldType:    b.classifier.Classify(evidence),
		Nullable:     nullable,
		IsCollection: isCollection,
		SampleValues: sampleValues,
	}
}

// BuildFromMetadata is the structural fallback for when no sample data is
// available: descriptors are built from the declared column types alone.
// Columns with unknown nullability are treated as nullable so valid future
// data is never rejected by the index.
func (b *Builder) BuildFromMetadata(columns []schema.Column) []ColumnDescriptor {
	descriptors := make([]ColumnDescriptor, 0, len(columns))
	for _, col := range columns {
		nullable := true
		if col.Nullable != nil {
			nullable = *col.Nullable
		}

		fieldType := b.classifier.Classify(Evidence{DeclaredType: col.DataType})

		descriptors = append(descriptors, ColumnDescriptor{
			Name:         col.Name,
			FieldType:    fieldType,
			Nullable:     nullable,
			IsCollection: fieldType.IsCollection(),
		})
	}
	return descriptors
}
