package tool

import "strconv"

// Arguments is the dynamically typed argument mapping supplied with a
// call. Values arrive as decoded JSON: string, float64, bool, or nil.
type Arguments map[string]any

// Has reports whether key is present with a non-null value.
func (a Arguments) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// String returns the value under key coerced to a string. Numbers
// render in their shortest form, booleans as "true"/"false". Absent,
// null, and non-scalar values return "".
func (a Arguments) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Float returns the numeric value under key, or def when the value is
// absent, null, or not a number.
func (a Arguments) Float(key string, def float64) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Int returns the integer value under key, or def when the value is
// absent, null, or not a number. Fractional values truncate.
func (a Arguments) Int(key string, def int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return def
	}
}

// Bool returns the boolean value under key, or def when the value is
// absent, null, or not a boolean.
func (a Arguments) Bool(key string, def bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return def
}
