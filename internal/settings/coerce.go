package settings

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// toFloat converts numbers, numeric strings and booleans.
// NaN, infinities and anything else report ok=false.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0, false
		}
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// toInt is toFloat rounded to the nearest integer. Values outside the int
// range report ok=false.
func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}

	f = math.Round(f)
	if f < float64(math.MinInt) || f >= float64(math.MaxInt) {
		return 0, false
	}

	return int(f), true
}

// toBool applies truthiness: "true"/"1"/"t" are true, "false"/"0"/"f" and ""
// are false, any other string is true, numbers are true unless zero.
func toBool(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		s := strings.TrimSpace(b)
		if s == "" {
			return false
		}

		parsed, err := cast.ToBoolE(s)
		if err != nil {
			return true
		}

		return parsed
	}

	if f, ok := toFloat(v); ok {
		return f != 0
	}

	return true
}

// toString renders scalars; nil becomes "".
func toString(v any) string {
	if v == nil {
		return ""
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return s
}
