package physics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluidPropertiesAreDeterministic(t *testing.T) {
	for _, temp := range []float64{-40, 0, 4, 20, 37.5, 100, 250} {
		assert.Equal(t, math.Float64bits(Density(temp)), math.Float64bits(Density(temp)), "density at %v", temp)
		assert.Equal(t, math.Float64bits(Viscosity(temp)), math.Float64bits(Viscosity(temp)), "viscosity at %v", temp)
	}
}

func TestFluidProperties(t *testing.T) {
	tests := []struct {
		name      string
		temp      float64
		density   float64
		viscosity float64
	}{
		{name: "reference temperature", temp: 20, density: 1000, viscosity: 0.001},
		{name: "warm water", temp: 30, density: 998, viscosity: 0.000818731},
		{name: "below freezing is extrapolated", temp: -10, density: 1006, viscosity: 0.00182212},
		{name: "above boiling is extrapolated", temp: 150, density: 974, viscosity: 0.0000742736},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.density, Density(tt.temp), 1e-9)
			assert.InDelta(t, tt.viscosity, Viscosity(tt.temp), 1e-8)
		})
	}
}

func TestFluid(t *testing.T) {
	fs := Fluid(20)
	assert.Equal(t, "ρ = 1000.00 kg/m³, μ = 0.001000 Pa·s @ 20.00 °C", fs.Calculation)
}

func TestHydrostaticPressure(t *testing.T) {
	r := HydrostaticPressure(1, 20)

	assert.InDelta(t, 9810, r.Value, 1e-9)
	assert.Equal(t, "Pa", r.Unit)
	assert.Equal(t, "P = ρ × g × h", r.Formula)
	assert.Equal(t, "P = 1000.00 kg/m³ × 9.81 m/s² × 1.00 m = 9810.00 Pa", r.Calculation)
}

func TestBuoyancy(t *testing.T) {
	submerged := 1 * math.Pi * 0.25 * 0.25
	r := Buoyancy(submerged, 20)

	assert.InDelta(t, 1926.189, r.Value, 1e-3)
	assert.Equal(t, "N", r.Unit)
	assert.Equal(t, "E = 1000.00 kg/m³ × 9.81 m/s² × 0.1963 m³ = 1926.19 N", r.Calculation)
}

func TestReynolds(t *testing.T) {
	r := Reynolds(10, 0.025, 20)

	assert.InDelta(t, 8488.26, r.Value, 0.5)
	assert.Equal(t, RegimeTurbulent, r.Regime)
	assert.Equal(t, "Tipo de escoamento: Turbulento", r.Description)
	assert.Equal(t, "", r.Unit)
	assert.Equal(t, "Re = (1000.00 kg/m³ × 0.340 m/s × 0.025 m) / 0.001000 Pa·s = 8488", r.Calculation)
}

func TestRegimeFor(t *testing.T) {
	tests := []struct {
		re   float64
		want string
	}{
		{re: 0, want: RegimeLaminar},
		{re: 2299.99, want: RegimeLaminar},
		{re: 2300, want: RegimeTransition},
		{re: 3999.99, want: RegimeTransition},
		{re: 4000, want: RegimeTurbulent},
		{re: 1e6, want: RegimeTurbulent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RegimeFor(tt.re), "Re=%v", tt.re)
	}
}

func TestReynolds_ZeroFlowIsLaminar(t *testing.T) {
	r := Reynolds(0, 0.025, 20)
	assert.Equal(t, 0.0, r.Value)
	assert.Equal(t, RegimeLaminar, r.Regime)
}

func TestHeadLoss(t *testing.T) {
	r := HeadLoss(10, 10, 0.025, DefaultFrictionFactor)

	assert.InDelta(t, 0.0470055, r.Value, 1e-5)
	assert.Equal(t, "m", r.Unit)
	assert.Equal(t, "h_f = 0.02 × (10m / 0.025m) × (0.340² m²/s² / 19.62) = 0.0470 m", r.Calculation)
}

func TestBernoulliEnergy(t *testing.T) {
	r := BernoulliEnergy(1000, 2, 1, 20)

	assert.InDelta(t, 12810, r.Value, 1e-6)
	assert.Equal(t, "E = 1000.00 + 2000.00 + 9810.00 = 12810.00 Pa", r.Calculation)
	assert.Equal(t, "Energia total do fluido (Bernoulli)", r.Description)
}

func TestFillTime(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		total     float64
		flow      float64
		minutes   float64
		formatted string
	}{
		{name: "half tank at 10 L/min", current: 50, total: 100, flow: 10, minutes: 5, formatted: "0h 5min 0s"},
		{name: "fractional minutes", current: 0, total: 100, flow: 7, minutes: 14.2857, formatted: "0h 14min 17s"},
		{name: "over an hour", current: 0, total: 100, flow: 0.5, minutes: 200, formatted: "3h 20min 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FillTime(tt.current, tt.total, tt.flow)
			assert.InDelta(t, tt.minutes, r.Value, 1e-3)
			assert.Equal(t, tt.formatted, r.Formatted)
			assert.Equal(t, "Tempo restante: "+tt.formatted, r.Description)
		})
	}

	r := FillTime(50, 100, 10)
	assert.Equal(t, "t = (100.0 L - 50.00 L) / 10.00 L/min = 5.00 min", r.Calculation)
}

func TestFillTime_ZeroFlowIsInfinite(t *testing.T) {
	for _, flow := range []float64{0, -3} {
		var r Result
		require.NotPanics(t, func() { r = FillTime(0, 100, flow) })

		assert.True(t, math.IsInf(r.Value, 1))
		assert.True(t, r.IsInfinite())
		assert.Contains(t, r.Formatted, "infinito")
		assert.Equal(t, "Vazão zero - tempo infinito", r.Calculation)
	}
}

func TestFillPercentage(t *testing.T) {
	assert.Equal(t, 0.0, FillPercentage(0, 100))
	assert.Equal(t, 25.0, FillPercentage(25, 100))
	assert.Equal(t, 100.0, FillPercentage(100, 100))
	assert.Equal(t, 100.0, FillPercentage(150, 100))
	assert.Equal(t, -10.0, FillPercentage(-10, 100), "no lower clamp")
}

func TestAccumulatedVolume(t *testing.T) {
	r := AccumulatedVolume(60, 99.5, 1.0/60)

	assert.InDelta(t, 100.5, r.Value, 1e-9, "the formula itself does not clamp")
	assert.Equal(t, "V = 99.50 L + 60.00 L/min × 1.0 s = 100.50 L", r.Calculation)
}

func TestSensorReadings(t *testing.T) {
	assert.Equal(t, "Q = 12.35 L/min (leitura direta do sensor)", FlowReading(12.345678).Calculation)
	assert.Equal(t, "h = 1.50 m (leitura direta do sensor)", LevelReading(1.5).Calculation)
	assert.Equal(t, "T = 20.00 °C (leitura direta do sensor)", TemperatureReading(20).Calculation)
}

func TestResultMarshalJSON(t *testing.T) {
	t.Run("finite value", func(t *testing.T) {
		b, err := json.Marshal(HydrostaticPressure(1, 20))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.InDelta(t, 9810, got["value"], 1e-9)
		assert.Equal(t, "Pa", got["unit"])
		assert.NotContains(t, got, "infinite")
	})

	t.Run("infinite value", func(t *testing.T) {
		b, err := json.Marshal(FillTime(0, 100, 0))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Nil(t, got["value"])
		assert.Equal(t, true, got["infinite"])
		assert.Equal(t, InfiniteDuration, got["formatted"])
	})
}
