// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"math"
	"strings"
)

// Evidence is the per column input to classification. DeclaredType is the raw
// source type name from the catalog ("" when absent), SampleValues are the
// observed non absent values in original order, and IsCollection indicates a
// multi valued column.
type Evidence struct {
	DeclaredType string
	SampleValues []any
	IsCollection bool
}

// Config controls classification policy.
type Config struct {
	// DisableTemporalDeclaredTypes disables the date/time declared type
	// family. When set, declared types like "datetime2" or "date" fall
	// through to Edm.String instead of Edm.DateTimeOffset. Sample based
	// classification of time values is unaffected.
	DisableTemporalDeclaredTypes bool
}

// Classifier maps column evidence to a search index field type. It is
// stateless and safe for concurrent use.
type Classifier struct {
	temporalDeclaredTypes bool
}

func NewClassifier(cfg *Config) *Classifier {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Classifier{
		temporalDeclaredTypes: !cfg.DisableTemporalDeclaredTypes,
	}
}

// Declared type family keywords, matched case insensitively as substrings of
// the declared type name. The order of the families resolves keyword
// overlaps: the 64 bit integer family must be checked before the generic
// "int" family so that "bigint" never classifies as Edm.Int32.
var (
	textualTypes  = []string{"char", "varchar", "nvarchar", "text", "ntext", "uniqueidentifier", "string"}
	booleanTypes  = []string{"bit", "bool", "boolean"}
	int64Types    = []string{"bigint", "int64"}
	int32Types    = []string{"tinyint", "smallint", "int"}
	floatTypes    = []string{"float", "real", "decimal", "numeric", "money", "smallmoney", "double"}
	temporalTypes = []string{"date", "time", "datetime", "datetimeoffset"}
)

// Classify resolves the field type for the evidence on input. It is a total
// function: unrecognised or missing evidence resolves to Edm.String (or
// Collection(Edm.String) for collection columns), never to an error.
func (c *Classifier) Classify(evidence Evidence) FieldType {
	if evidence.IsCollection {
		return CollectionOf(c.classifyElement(evidence.SampleValues))
	}

	if evidence.DeclaredType != "" {
		return c.classifyDeclaredType(evidence.DeclaredType)
	}

	if len(evidence.SampleValues) > 0 {
		return c.classifySampleValues(evidence.SampleValues)
	}

	return FieldTypeString
}

// classifyElement derives the element type of a collection column from the
// first element of the first non empty container observed. Empty containers
// and unrecognised element kinds default to text.
func (c *Classifier) classifyElement(values []any) FieldType {
	element := representativeElement(values)
	if element == nil {
		return FieldTypeString
	}

	switch KindOf(element) {
	case KindText:
		return FieldTypeString
	case KindInteger:
		if i, ok := asInt64(element); ok && fitsInt32(i, i) {
			return FieldTypeInt32
		}
		return FieldTypeInt64
	case KindFloat:
		return FieldTypeDouble
	case KindDateTime:
		return FieldTypeDateTimeOffset
	default:
		return FieldTypeString
	}
}

func (c *Classifier) classifyDeclaredType(declaredType string) FieldType {
	name, isArray := parseDeclaredType(declaredType)

	fieldType := FieldTypeString
	switch {
	case containsAny(name, textualTypes):
		fieldType = FieldTypeString
	case containsAny(name, booleanTypes):
		fieldType = FieldTypeBoolean
	case containsAny(name, int64Types):
		fieldType = FieldTypeInt64
	case containsAny(name, int32Types):
		fieldType = FieldTypeInt32
	case containsAny(name, floatTypes):
		fieldType = FieldTypeDouble
	case c.temporalDeclaredTypes && containsAny(name, temporalTypes):
		fieldType = FieldTypeDateTimeOffset
	}

	if isArray {
		return CollectionOf(fieldType)
	}
	return fieldType
}

// classifySampleValues maps a scalar column to a field type based on the
// kinds of its observed values. Integer columns are refined to Edm.Int32 only
// when every observed value fits the signed 32 bit range, so a single out of
// range value widens the whole column. Mixed integer/float columns widen to
// Edm.Double, any other kind mix resolves to text.
func (c *Classifier) classifySampleValues(values []any) FieldType {
	switch columnKind(values) {
	case KindText:
		return FieldTypeString
	case KindBoolean:
		return FieldTypeBoolean
	case KindInteger:
		return c.classifyIntegerRange(values)
	case KindFloat:
		return FieldTypeDouble
	case KindDateTime:
		return FieldTypeDateTimeOffset
	default:
		return FieldTypeString
	}
}

// classifyIntegerRange chooses between Edm.Int32 and Edm.Int64 based on the
// min/max over the whole sample. An empty sample defaults to Edm.Int32.
func (c *Classifier) classifyIntegerRange(values []any) FieldType {
	var minVal, maxVal int64
	seen := false
	for _, v := range values {
		i, ok := asInt64(v)
		if !ok {
			// uint64 beyond the int64 range cannot fit 32 bits
			if KindOf(v) == KindInteger {
				return FieldTypeInt64
			}
			continue
		}
		if !seen {
			minVal, maxVal = i, i
			seen = true
			continue
		}
		minVal = min(minVal, i)
		maxVal = max(maxVal, i)
	}
	if !seen || fitsInt32(minVal, maxVal) {
		return FieldTypeInt32
	}
	return FieldTypeInt64
}

// columnKind resolves a single kind for a scalar column the way a column
// level dtype would: a consistent kind across all non absent values wins,
// integers and floats together widen to float, anything else is text.
func columnKind(values []any) Kind {
	kind := KindUnknown
	for _, v := range values {
		if v == nil {
			continue
		}
		vk := KindOf(v)
		switch {
		case kind == KindUnknown:
			kind = vk
		case kind == vk:
		case kind == KindInteger && vk == KindFloat, kind == KindFloat && vk == KindInteger:
			kind = KindFloat
		default:
			return KindText
		}
	}
	return kind
}

// representativeElement returns the first element of the first non empty
// container in the sample. Scalar sample values stand in for themselves so
// callers that pre-extract elements keep working.
func representativeElement(values []any) any {
	for _, v := range values {
		if v == nil {
			continue
		}
		elems := elementsOf(v)
		if elems == nil {
			return v
		}
		if len(elems) > 0 {
			return elems[0]
		}
	}
	return nil
}

// parseDeclaredType strips the length/precision suffix (e.g. "(50)" or
// "(10,2)") and a trailing array marker from a declared type name, and lower
// cases it for matching.
func parseDeclaredType(name string) (typeName string, isArray bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	if strings.HasSuffix(name, "[]") { // detect and strip array suffix. this is always last.
		isArray = true
		name = name[:len(name)-2]
	}

	if strings.HasSuffix(name, ")") { // detect and strip parameters suffix.
		if openingBracketIndex := strings.LastIndex(name, "("); openingBracketIndex != -1 {
			name = name[:openingBracketIndex]
		}
	}

	return name, isArray
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func fitsInt32(minVal, maxVal int64) bool {
	return minVal >= math.MinInt32 && maxVal <= math.MaxInt32
}
