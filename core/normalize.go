package core

import "reflect"

// Normalize collapses a sequence holding exactly one element to that element.
// Any other value, including empty and multi-element sequences, is returned
// unchanged. Slices and arrays of every element type count as sequences
// except []byte, which is treated as an opaque scalar.
func Normalize(v any) any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		if len(s) == 1 {
			return s[0]
		}
		return v
	case []byte:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 1 {
			return rv.Index(0).Interface()
		}
	}

	return v
}
