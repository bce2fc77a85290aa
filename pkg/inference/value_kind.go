// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"math"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the normalised value kind tag for a runtime sample value. All
// classification decisions over sample values go through this single
// normalisation step, so the classifier never depends on the full Go type
// system.
type Kind uint

const (
	KindUnknown Kind = iota
	KindText
	KindInteger
	KindFloat
	KindBoolean
	KindDateTime
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDateTime:
		return "datetime"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// KindOf maps a runtime value to its kind tag. Values of unknown types map to
// KindUnknown, never to an error.
func KindOf(value any) Kind {
	switch v := value.(type) {
	case nil:
		return KindUnknown
	case string, []byte:
		return KindText
	case bool:
		return KindBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case decimal.Decimal, *decimal.Decimal:
		return KindFloat
	case time.Time, *time.Time:
		return KindDateTime
	case []any:
		return KindContainer
	default:
		// catch remaining slice and array types (e.g. []string, []int64)
		// without enumerating them. []byte is already handled as text above.
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			return KindContainer
		default:
			return KindUnknown
		}
	}
}

// asInt64 converts an integer kind value to int64 for range checks. The
// second return is false for non integer values and for uint64 values beyond
// the int64 range, which by definition do not fit a 32 bit integer either.
func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return asInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// elementsOf returns the container value as a []any, normalising typed
// slices. Non container values return nil.
func elementsOf(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []byte:
		return nil
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			elems := make([]any, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				elems[i] = rv.Index(i).Interface()
			}
			return elems
		default:
			return nil
		}
	}
}
