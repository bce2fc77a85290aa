// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify_DeclaredTypes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		declaredType string

		wantFieldType FieldType
	}{
		"nvarchar with length":        {declaredType: "NVARCHAR(255)", wantFieldType: FieldTypeString},
		"varchar":                     {declaredType: "varchar(50)", wantFieldType: FieldTypeString},
		"char":                        {declaredType: "char(10)", wantFieldType: FieldTypeString},
		"text":                        {declaredType: "text", wantFieldType: FieldTypeString},
		"ntext":                       {declaredType: "ntext", wantFieldType: FieldTypeString},
		"uniqueidentifier":            {declaredType: "uniqueidentifier", wantFieldType: FieldTypeString},
		"string":                      {declaredType: "string", wantFieldType: FieldTypeString},
		"bigint":                      {declaredType: "BIGINT", wantFieldType: FieldTypeInt64},
		"int64":                       {declaredType: "int64", wantFieldType: FieldTypeInt64},
		"int":                         {declaredType: "int", wantFieldType: FieldTypeInt32},
		"integer":                     {declaredType: "integer", wantFieldType: FieldTypeInt32},
		"tinyint":                     {declaredType: "tinyint", wantFieldType: FieldTypeInt32},
		"smallint":                    {declaredType: "smallint", wantFieldType: FieldTypeInt32},
		"bit":                         {declaredType: "bit", wantFieldType: FieldTypeBoolean},
		"boolean":                     {declaredType: "boolean", wantFieldType: FieldTypeBoolean},
		"float":                       {declaredType: "float", wantFieldType: FieldTypeDouble},
		"real":                        {declaredType: "real", wantFieldType: FieldTypeDouble},
		"decimal with precision":      {declaredType: "decimal(10,2)", wantFieldType: FieldTypeDouble},
		"numeric":                     {declaredType: "numeric(5,2)", wantFieldType: FieldTypeDouble},
		"money":                       {declaredType: "money", wantFieldType: FieldTypeDouble},
		"smallmoney":                  {declaredType: "smallmoney", wantFieldType: FieldTypeDouble},
		"double precision":            {declaredType: "double precision", wantFieldType: FieldTypeDouble},
		"date":                        {declaredType: "date", wantFieldType: FieldTypeDateTimeOffset},
		"datetime2":                   {declaredType: "datetime2", wantFieldType: FieldTypeDateTimeOffset},
		"smalldatetime":               {declaredType: "smalldatetime", wantFieldType: FieldTypeDateTimeOffset},
		"datetimeoffset":              {declaredType: "datetimeoffset", wantFieldType: FieldTypeDateTimeOffset},
		"time":                        {declaredType: "time(7)", wantFieldType: FieldTypeDateTimeOffset},
		"unknown type":                {declaredType: "geography", wantFieldType: FieldTypeString},
		"empty after suffix strip":    {declaredType: "(50)", wantFieldType: FieldTypeString},
		"text array":                  {declaredType: "text[]", wantFieldType: FieldTypeCollectionString},
		"bigint array":                {declaredType: "bigint[]", wantFieldType: FieldTypeCollectionInt64},
		"numeric array with params":   {declaredType: "numeric(10,2)[]", wantFieldType: FieldTypeCollectionDouble},
		"mixed case with whitespace":  {declaredType: "  NvArChAr(30) ", wantFieldType: FieldTypeString},
		"varbinary falls back":        {declaredType: "varbinary(max)", wantFieldType: FieldTypeString},
		"bigint never matches int32":  {declaredType: "bigint", wantFieldType: FieldTypeInt64},
		"unsigned bigint":             {declaredType: "bigint unsigned", wantFieldType: FieldTypeInt64},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			classifier := NewClassifier(nil)
			got := classifier.Classify(Evidence{DeclaredType: tc.declaredType})
			require.Equal(t, tc.wantFieldType, got)
		})
	}
}

func TestClassifier_Classify_TemporalPolicy(t *testing.T) {
	t.Parallel()

	temporalDeclaredTypes := []string{"date", "time", "datetime", "datetime2", "smalldatetime", "datetimeoffset"}

	classifier := NewClassifier(&Config{DisableTemporalDeclaredTypes: true})
	for _, declaredType := range temporalDeclaredTypes {
		got := classifier.Classify(Evidence{DeclaredType: declaredType})
		require.Equalf(t, FieldTypeString, got, "declared type %q with temporal mapping disabled", declaredType)
	}

	// sample based datetime detection is not subject to the declared type
	// policy
	got := classifier.Classify(Evidence{SampleValues: []any{time.Now()}})
	require.Equal(t, FieldTypeDateTimeOffset, got)
}

func TestClassifier_Classify_SampleValues(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := map[string]struct {
		sampleValues []any

		wantFieldType FieldType
	}{
		"strings":                     {sampleValues: []any{"a", "b"}, wantFieldType: FieldTypeString},
		"bytes":                       {sampleValues: []any{[]byte("a")}, wantFieldType: FieldTypeString},
		"booleans":                    {sampleValues: []any{true, false}, wantFieldType: FieldTypeBoolean},
		"small integers":              {sampleValues: []any{int64(1), int64(2), int64(3)}, wantFieldType: FieldTypeInt32},
		"int32 boundary values":       {sampleValues: []any{int64(-2147483648), int64(2147483647)}, wantFieldType: FieldTypeInt32},
		"one value beyond int32":      {sampleValues: []any{int64(1), int64(2), int64(3000000000)}, wantFieldType: FieldTypeInt64},
		"negative beyond int32":       {sampleValues: []any{int64(-2147483649)}, wantFieldType: FieldTypeInt64},
		"mixed int widths in range":   {sampleValues: []any{int8(1), int16(2), int32(3), 4, uint16(5)}, wantFieldType: FieldTypeInt32},
		"uint64 beyond int64":         {sampleValues: []any{uint64(18446744073709551615)}, wantFieldType: FieldTypeInt64},
		"floats":                      {sampleValues: []any{1.5, 2.5}, wantFieldType: FieldTypeDouble},
		"float32":                     {sampleValues: []any{float32(1.5)}, wantFieldType: FieldTypeDouble},
		"decimals":                    {sampleValues: []any{decimal.NewFromFloat(10.25)}, wantFieldType: FieldTypeDouble},
		"integers widened by floats":  {sampleValues: []any{int64(1), 2.5}, wantFieldType: FieldTypeDouble},
		"datetimes":                   {sampleValues: []any{now, now.Add(time.Hour)}, wantFieldType: FieldTypeDateTimeOffset},
		"mixed kinds resolve to text": {sampleValues: []any{int64(1), "a"}, wantFieldType: FieldTypeString},
		"unknown value type":          {sampleValues: []any{struct{}{}}, wantFieldType: FieldTypeString},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			classifier := NewClassifier(nil)
			got := classifier.Classify(Evidence{SampleValues: tc.sampleValues})
			require.Equal(t, tc.wantFieldType, got)
		})
	}
}

func TestClassifier_Classify_Collections(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		sampleValues []any

		wantFieldType FieldType
	}{
		"string elements":          {sampleValues: []any{[]any{"a", "b"}, []any{"c"}}, wantFieldType: FieldTypeCollectionString},
		"typed string slice":       {sampleValues: []any{[]string{"a", "b"}}, wantFieldType: FieldTypeCollectionString},
		"int32 range elements":     {sampleValues: []any{[]any{int64(1), int64(2)}}, wantFieldType: FieldTypeCollectionInt32},
		"wide integer elements":    {sampleValues: []any{[]any{int64(3000000000)}}, wantFieldType: FieldTypeCollectionInt64},
		"float elements":           {sampleValues: []any{[]any{1.5}}, wantFieldType: FieldTypeCollectionDouble},
		"datetime elements":        {sampleValues: []any{[]any{time.Now()}}, wantFieldType: FieldTypeCollectionDateTimeOffset},
		"boolean elements default": {sampleValues: []any{[]any{true}}, wantFieldType: FieldTypeCollectionString},
		"first container empty":    {sampleValues: []any{[]any{}, []any{int64(1)}}, wantFieldType: FieldTypeCollectionInt32},
		"all containers empty":     {sampleValues: []any{[]any{}}, wantFieldType: FieldTypeCollectionString},
		"no samples at all":        {sampleValues: nil, wantFieldType: FieldTypeCollectionString},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			classifier := NewClassifier(nil)
			got := classifier.Classify(Evidence{SampleValues: tc.sampleValues, IsCollection: true})
			require.Equal(t, tc.wantFieldType, got)
		})
	}
}

func TestClassifier_Classify_Fallbacks(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(nil)

	// no evidence at all is still classified
	require.Equal(t, FieldTypeString, classifier.Classify(Evidence{}))

	// declared type takes precedence over sample values for scalar columns
	got := classifier.Classify(Evidence{DeclaredType: "bigint", SampleValues: []any{int64(1)}})
	require.Equal(t, FieldTypeInt64, got)

	// the collection branch ignores the declared type
	got = classifier.Classify(Evidence{
		DeclaredType: "bigint",
		SampleValues: []any{[]any{"a"}},
		IsCollection: true,
	})
	require.Equal(t, FieldTypeCollectionString, got)
}

func TestClassifier_Classify_Idempotence(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(nil)
	evidence := Evidence{SampleValues: []any{int64(1), int64(3000000000)}}

	first := classifier.Classify(evidence)
	second := classifier.Classify(evidence)
	require.Equal(t, first, second)
	require.Equal(t, FieldTypeInt64, first)
}

func TestFieldType_Collections(t *testing.T) {
	t.Parallel()

	require.Equal(t, FieldTypeCollectionInt64, CollectionOf(FieldTypeInt64))
	require.Equal(t, FieldTypeCollectionInt64, CollectionOf(FieldTypeCollectionInt64))
	require.Equal(t, FieldTypeInt64, FieldTypeCollectionInt64.Elem())
	require.Equal(t, FieldTypeInt64, FieldTypeInt64.Elem())
	require.True(t, FieldTypeCollectionString.IsCollection())
	require.False(t, FieldTypeString.IsCollection())
	require.Equal(t, "Collection(Edm.DateTimeOffset)", FieldTypeCollectionDateTimeOffset.String())
}
