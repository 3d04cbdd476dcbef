package param

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errNotFinite  = errors.New("value is not finite")
	errOutOfRange = errors.New("value is outside the 32-bit integer range")
)

// ParseInt parses raw range text as an integer. A decimal fraction is
// truncated toward zero. The result must fit in an int32.
func ParseInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, &ParseError{Type: Int, Raw: raw, Wrapped: errOutOfRange}
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Type: Int, Raw: raw, Wrapped: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Type: Int, Raw: raw, Wrapped: errNotFinite}
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, &ParseError{Type: Int, Raw: raw, Wrapped: errOutOfRange}
	}
	return int(f), nil
}

// ParseFloat parses raw range text as a finite float.
func ParseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ParseError{Type: Float, Raw: raw, Wrapped: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Type: Float, Raw: raw, Wrapped: errNotFinite}
	}
	return f, nil
}

// Parse parses raw per t, running only the parser t selects. Integer types
// return whole numbers.
func Parse(t Type, raw string) (float64, error) {
	if t.IsInteger() {
		n, err := ParseInt(raw)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Type = t
			}
			return 0, err
		}
		return float64(n), nil
	}
	f, err := ParseFloat(raw)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Type = t
		}
		return 0, err
	}
	return f, nil
}

// FormatNumber renders v the way a browser prints a number: shortest
// round-trip digits, no trailing zeros, exponent form outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + exp[:1] + digits
}

// FormatVector joins components with commas and no spaces.
func FormatVector(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, ",")
}
