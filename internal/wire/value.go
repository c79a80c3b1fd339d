package wire

import (
	"strconv"
)

// asArray reports v as a JSON array.
func asArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// asString reports v as a string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber coerces v to a float64. The wire format is inconsistent about
// numeric encoding: the same field can arrive as a JSON number or as a decimal
// string depending on magnitude, so both are accepted.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// index returns arr[i] when the index exists and is non-nil.
func index(arr []any, i int) (any, bool) {
	if i < 0 || i >= len(arr) {
		return nil, false
	}
	if arr[i] == nil {
		return nil, false
	}
	return arr[i], true
}

// stringAt extracts a string field at the given index.
func stringAt(arr []any, i int) (string, bool) {
	v, ok := index(arr, i)
	if !ok {
		return "", false
	}
	return asString(v)
}

// numberAt extracts a numeric field at the given index.
func numberAt(arr []any, i int) (float64, bool) {
	v, ok := index(arr, i)
	if !ok {
		return 0, false
	}
	return asNumber(v)
}

// secondsAt extracts the seconds component of a [seconds, nanoseconds] pair at
// the given index. Only the seconds component is used; the value is truncated
// to an integer.
func secondsAt(arr []any, i int) (int64, bool) {
	v, ok := index(arr, i)
	if !ok {
		return 0, false
	}
	pair, ok := asArray(v)
	if !ok || len(pair) == 0 {
		return 0, false
	}
	seconds, ok := asNumber(pair[0])
	if !ok {
		return 0, false
	}
	return int64(seconds), true
}
