// Package normalize turns loosely typed values (YAML front matter, spreadsheet-backed
// JSON) into the shapes the journal works with. Every decoder is total: bad input
// yields a zero value or an omission, never an error or a panic.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// First returns the first value among keys that is present and non-nil,
// mirroring a chain of fallbacks such as gameId -> game.
func First(record map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Scalar coerces strings, numbers and booleans to a trimmed string. Lists, maps
// and nil become "".
func Scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// String returns v trimmed when it is a string and "" otherwise.
func String(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Float accepts numbers and numeric strings.
func Float(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Int accepts whole numbers, including floats without a fractional part and
// numeric strings.
func Int(v any) *int {
	f := Float(v)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	i := int(*f)
	return &i
}

// Bool accepts booleans and the strings "true"/"1"/"false"/"0". Anything else is absent.
func Bool(v any) *bool {
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case string:
		switch t {
		case "true", "1":
			b = true
		case "false", "0":
			b = false
		default:
			return nil
		}
	default:
		return nil
	}
	return &b
}
