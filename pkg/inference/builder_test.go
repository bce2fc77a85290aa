// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/searchhintio/searchhint/pkg/schema"
)

func TestBuilder_BuildColumnDescriptors(t *testing.T) {
	t.Parallel()

	testTime := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	tests := map[string]struct {
		sample *schema.Sample

		wantDescriptors []ColumnDescriptor
	}{
		"scalar columns": {
			sample: &schema.Sample{
				ColumnNames: []string{"id", "name", "active", "created_at"},
				Rows: [][]any{
					{int64(1), "alice", true, testTime},
					{int64(2), "bob", false, testTime},
				},
			},
			wantDescriptors: []ColumnDescriptor{
				{Name: "id", FieldType: FieldTypeInt32, SampleValues: []any{int64(1), int64(2)}},
				{Name: "name", FieldType: FieldTypeString, SampleValues: []any{"alice", "bob"}},
				{Name: "active", FieldType: FieldTypeBoolean, SampleValues: []any{true, false}},
				{Name: "created_at", FieldType: FieldTypeDateTimeOffset, SampleValues: []any{testTime, testTime}},
			},
		},
		"nullable column": {
			sample: &schema.Sample{
				ColumnNames: []string{"score"},
				Rows: [][]any{
					{1.5},
					{nil},
					{2.5},
				},
			},
			wantDescriptors: []ColumnDescriptor{
				{Name: "score", FieldType: FieldTypeDouble, Nullable: true, SampleValues: []any{1.5, 2.5}},
			},
		},
		"integer column widened by one value": {
			sample: &schema.Sample{
				ColumnNames: []string{"count"},
				Rows: [][]any{
					{int64(1)},
					{int64(2)},
					{int64(3000000000)},
				},
			},
			wantDescriptors: []ColumnDescriptor{
				{Name: "count", FieldType: FieldTypeInt64, SampleValues: []any{int64(1), int64(2), int64(3000000000)}},
			},
		},
		"collection column": {
			sample: &schema.Sample{
				ColumnNames: []string{"tags"},
				Rows: [][]any{
					{[]any{"a", "b"}},
					{[]any{"c"}},
				},
			},
			wantDescriptors: []ColumnDescriptor{
				{
					Name:         "tags",
					FieldType:    FieldTypeCollectionString,
					IsCollection: true,
					SampleValues: []any{[]any{"a", "b"}, []any{"c"}},
				},
			},
		},
		"collection with leading empty container": {
			sample: &schema.Sample{
				ColumnNames: []string{"ids"},
				Rows: [][]any{
					{[]any{}},
					{[]any{int64(7)}},
				},
			},
			wantDescriptors: []ColumnDescriptor{
				{
					Name:         "ids",
					FieldType:    FieldTypeCollectionInt32,
					IsCollection: true,
					SampleValues: []any{[]any{}, []any{int64(7)}},
				},
			},
		},
		"all values absent": {
			sample: &schema.Sample{
				ColumnNames: []string{"empty"},
				Rows: [][]any{
					{nil},
					{nil},
				},
			},
			wantDescriptors: []ColumnDescriptor{
				{Name: "empty", FieldType: FieldTypeString, Nullable: true, SampleValues: []any{}},
			},
		},
		"no rows": {
			sample: &schema.Sample{
				ColumnNames: []string{"col"},
			},
			wantDescriptors: []ColumnDescriptor{
				{Name: "col", FieldType: FieldTypeString, SampleValues: []any{}},
			},
		},
		"short rows are absent cells": {
			sample: &schema.Sample{
				ColumnNames: []string{"a", "b"},
				Rows: [][]any{
					{int64(1), "x"},
					{int64(2)},
				},
			},
			wantDescriptors: []ColumnDescriptor{
				{Name: "a", FieldType: FieldTypeInt32, SampleValues: []any{int64(1), int64(2)}},
				{Name: "b", FieldType: FieldTypeString, Nullable: true, SampleValues: []any{"x"}},
			},
		},
		"empty sample": {
			sample:          &schema.Sample{},
			wantDescriptors: nil,
		},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			builder := NewBuilder(NewClassifier(nil))
			got := builder.BuildColumnDescriptors(tc.sample)
			if diff := cmp.Diff(tc.wantDescriptors, got); diff != "" {
				t.Errorf("unexpected descriptors (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilder_BuildColumnDescriptors_SampleValueLimit(t *testing.T) {
	t.Parallel()

	rows := make([][]any, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, []any{int64(i)})
	}
	sample := &schema.Sample{
		ColumnNames: []string{"n"},
		Rows:        rows,
	}

	builder := NewBuilder(NewClassifier(nil))
	descriptors := builder.BuildColumnDescriptors(sample)
	require.Len(t, descriptors, 1)
	require.Len(t, descriptors[0].SampleValues, maxSampleValues)
	// order is preserved
	require.Equal(t, int64(0), descriptors[0].SampleValues[0])
	require.Equal(t, int64(9), descriptors[0].SampleValues[maxSampleValues-1])
}

func TestBuilder_BuildFromMetadata(t *testing.T) {
	t.Parallel()

	notNullable := false

	builder := NewBuilder(NewClassifier(nil))
	got := builder.BuildFromMetadata([]schema.Column{
		{Name: "id", DataType: "bigint", Nullable: &notNullable},
		{Name: "name", DataType: "nvarchar(255)"},
		{Name: "price", DataType: "decimal(10,2)"},
		{Name: "tags", DataType: "text[]"},
		{Name: "mystery"},
	})

	want := []ColumnDescriptor{
		{Name: "id", FieldType: FieldTypeInt64, Nullable: false},
		{Name: "name", FieldType: FieldTypeString, Nullable: true},
		{Name: "price", FieldType: FieldTypeDouble, Nullable: true},
		{Name: "tags", FieldType: FieldTypeCollectionString, Nullable: true, IsCollection: true},
		{Name: "mystery", FieldType: FieldTypeString, Nullable: true},
	}
	require.Equal(t, want, got)
}
