package physics

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// fixed renders x with exactly places decimals. Non-finite values are
// spelled out instead of rounded.
func fixed(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

// plain renders x in its shortest exact form (0.025, 9.81, 10).
func plain(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
