package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v the way the widget always has: the shortest text that
// round-trips, in plain decimal between 1e-6 and 1e21 and in exponent form outside.
//
//	0.1+0.2 -> "0.30000000000000004"
//	1e21    -> "1e+21"
//	-0      -> "0"
//	0/0     -> "NaN"
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

	s := strconv.FormatFloat(v, 'e', -1, 64)
	// Go pads the exponent to two digits ("1e-07"); drop the padding.
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

// parseOperand reads the longest numeric prefix of s. Text with no numeric prefix
// (including the error marker) reads as NaN; out-of-range literals read as ±Inf.
func parseOperand(s string) float64 {
	s = strings.TrimSpace(s)
	for n := len(s); n > 0; n-- {
		prefix := s[:n]
		if !isDecimalLiteral(prefix) {
			continue
		}
		v, err := strconv.ParseFloat(prefix, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return v
		}
	}
	return math.NaN()
}

// isDecimalLiteral rejects the hex, underscore and "inf" spellings strconv accepts
// but the display never produces, except for the exact words it does produce.
func isDecimalLiteral(s string) bool {
	switch strings.TrimLeft(s, "+-") {
	case "Infinity", "NaN":
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}
