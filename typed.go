package paramtree

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// GetInt returns the value at key (or def) cast to an int. Strings use
// their leading numeric prefix, so "5 apples" is 5 and "apples" is 0.
func (t *Tree) GetInt(key string, def int) int {
	return toInt(t.Get(key, def))
}

// GetBoolean returns the value at key (or def) cast to a bool. false, nil,
// numeric zero, "", "0" and empty branches are false; everything else is true.
func (t *Tree) GetBoolean(key string, def bool) bool {
	return toBool(t.Get(key, def))
}

// GetString returns the value at key (or def) as a string. true becomes
// "1" and false or nil become "". Branches can't be represented and yield
// ErrTypeMismatch.
func (t *Tree) GetString(key string, def string) (string, error) {
	v := t.Get(key, def)
	if _, isBranch := v.(Map); isBranch {
		return "", fmt.Errorf("%w: requested %q as a string but the stored value is a branch", ErrTypeMismatch, key)
	}
	return toString(v), nil
}

func toInt(v interface{}) int {
	switch v := v.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return v
	case string:
		return stringToInt(v)
	case Map:
		if len(v) > 0 {
			return 1
		}
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt {
			return int(u)
		}
		return math.MaxInt
	case reflect.Float32, reflect.Float64:
		return int(clampFloat(rv.Float()))
	case reflect.String:
		return stringToInt(rv.String())
	}
	return 0
}

func clampInt64(n int64) int {
	switch {
	case n > math.MaxInt:
		return math.MaxInt
	case n < math.MinInt:
		return math.MinInt
	}
	return int(n)
}

// stringToInt converts the numeric prefix of s. Integer prefixes are
// parsed exactly and saturate on overflow; anything with a fraction or
// exponent goes through float64 and is truncated.
func stringToInt(s string) int {
	prefix, integral := numericPrefix(s)
	if prefix == "" {
		return 0
	}
	if integral {
		// ParseInt returns the saturated bound alongside ErrRange
		n, _ := strconv.ParseInt(prefix, 10, 64)
		return clampInt64(n)
	}
	// out of range prefixes come back as ±Inf, which clampFloat handles
	f, _ := strconv.ParseFloat(prefix, 64)
	return int(clampFloat(f))
}

func clampFloat(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return math.Trunc(f)
}

// numericPrefix returns the longest numeric prefix of s after leading
// whitespace: an optional sign, digits, an optional fraction and exponent.
// integral is false when the prefix has fractional digits or an exponent.
func numericPrefix(s string) (prefix string, integral bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	integral = true
	intEnd := end
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
			integral = false
		}
	}
	if digits == 0 {
		return "", false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
			integral = false
		}
	}
	if integral {
		return s[:intEnd], true
	}
	return s[:end], false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func toBool(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	case Map:
		return len(v) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String:
		return rv.String() != "" && rv.String() != "0"
	}
	return true
}

func toString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	case []byte:
		return string(v)
	case float64:
		return formatFloat(v)
	case float32:
		// widen through the shortest float32 form so 0.1 stays 0.1
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
		return formatFloat(f)
	case fmt.Stringer:
		return v.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

// floatPrecision is the number of significant digits floats keep when
// rendered as strings.
const floatPrecision = 14

// formatFloat renders f with floatPrecision significant digits, in plain
// notation for decimal exponents from -4 up to floatPrecision-1 and as
// mantissa "E" signed exponent otherwise, e.g. 0.30000000000000004 is "0.3"
// and 1e20 is "1.0E+20".
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NAN"
	case f == 0:
		return "0"
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'e', floatPrecision-1, 64), 64)
	shortest := strconv.FormatFloat(rounded, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(shortest, "e")
	exp, _ := strconv.Atoi(expPart)
	if exp < -4 || exp >= floatPrecision {
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		return fmt.Sprintf("%sE%+d", mantissa, exp)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
