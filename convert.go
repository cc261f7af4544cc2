package laxjson

import (
	"math"
	"strconv"
	"strings"
)

// Conversion methods never fail. Each takes the caller's default and
// applies the documented coercions; anything out of range or non-numeric
// yields the default. Numeric strings are parsed locale-invariantly.

// AsBool converts v to a boolean. False-ish values are Bool(false), the
// empty string, the string "false", and zero numbers. Containers are true
// exactly when non-empty, regardless of contents. Null yields def.
func (v *Value) AsBool(def bool) bool {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeInt:
		return v.n != 0
	case TypeFloat:
		return v.f != 0
	case TypeString:
		if v.s == "" || strings.EqualFold(v.s, "false") {
			return false
		}
		return true
	case TypeArray, TypeDict:
		return v.Len() > 0
	}
	return def
}

// AsInt converts v to a 64-bit integer. Floats truncate toward zero;
// non-finite or out-of-range floats yield def. Strings parse as an integer
// first, then as a float.
func (v *Value) AsInt(def int64) int64 {
	switch v.typ {
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	case TypeInt:
		return v.n
	case TypeFloat:
		return floatToInt(v.f, def)
	case TypeString:
		if n, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return floatToInt(f, def)
		}
	}
	return def
}

// AsInt32 is AsInt narrowed to the 32-bit range.
func (v *Value) AsInt32(def int32) int32 {
	n := v.AsInt(int64(def))
	if n < math.MinInt32 || n > math.MaxInt32 {
		return def
	}
	return int32(n)
}

// AsFloat converts v to a 64-bit float. Integer values convert exactly when
// representable; strings parse with ParseFloat, so the NaN and Infinity
// spellings are accepted.
func (v *Value) AsFloat(def float64) float64 {
	switch v.typ {
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	case TypeInt:
		return float64(v.n)
	case TypeFloat:
		return v.f
	case TypeString:
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return f
		}
	}
	return def
}

// AsString converts v to text. Numbers render exactly as the writer would
// emit them, so a float is always distinguishable from an integer. Null and
// containers yield def.
func (v *Value) AsString(def string) string {
	switch v.typ {
	case TypeBool:
		if v.b {
			return "true"
		}
		return "false"
	case TypeInt:
		return strconv.FormatInt(v.n, 10)
	case TypeFloat:
		return string(appendFloat(nil, v.f))
	case TypeString:
		return v.s
	}
	return def
}

func floatToInt(f float64, def int64) int64 {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return def
	}
	return int64(f)
}
