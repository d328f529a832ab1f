package mathutil

import (
	"math"
	"strconv"
)

// Round rounds v to the given number of decimal places.
//
// Rounding goes through correctly rounded decimal formatting, so ties are
// resolved on the exact binary value (2.675 rounds to 2.67) rather than by
// scaling, which drifts for values that are not exactly representable.
// Zero results are returned as +0.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		return 0
	}
	return r
}
