package number

import (
	"math"
	"strconv"
)

var epsilon float64 = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func FloatToStr(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// ClampFloat bounds v to [lo, hi]; lo and hi are swapped when given in the wrong order.
func ClampFloat(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// MinMax returns a and b ordered.
func MinMax(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
