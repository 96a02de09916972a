package physics

import (
	"encoding/json"
	"math"
)

// Flow regime labels reported by Reynolds.
const (
	RegimeLaminar    = "Laminar"
	RegimeTransition = "Transição"
	RegimeTurbulent  = "Turbulento"
)

// Result is a computed, display-oriented physics value.
// Formula and Calculation are human readable; Calculation shows the
// substituted numbers.
type Result struct {
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Formula     string  `json:"formula"`
	Calculation string  `json:"calculation"`
	Description string  `json:"description"`

	// Regime is set by Reynolds only.
	Regime string `json:"regime,omitempty"`
	// Formatted is set by FillTime only.
	Formatted string `json:"formatted,omitempty"`
}

// IsInfinite reports whether the result is the "uncomputable" sentinel.
func (r Result) IsInfinite() bool {
	return math.IsInf(r.Value, 0)
}

// MarshalJSON encodes non-finite values as null plus an "infinite" flag,
// since JSON has no representation for them.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	out := struct {
		alias
		Value    *float64 `json:"value"`
		Infinite bool     `json:"infinite,omitempty"`
	}{alias: alias(r)}

	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		out.Infinite = math.IsInf(r.Value, 0)
	} else {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}
