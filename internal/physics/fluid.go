package physics

import "math"

const (
	// Gravity is the gravitational acceleration in m/s².
	Gravity = 9.81

	// ReferenceDensity is the density of water at ReferenceTemperature, in kg/m³.
	ReferenceDensity = 1000.0

	// ReferenceTemperature is the temperature (°C) the empirical fits are anchored to.
	ReferenceTemperature = 20.0

	// DefaultFrictionFactor is the Darcy friction factor used for head loss.
	DefaultFrictionFactor = 0.02

	// litres per minute -> cubic metres per second
	lpmPerCubicMetrePerSecond = 60000.0
)

// FluidState groups the temperature-dependent properties of the water.
type FluidState struct {
	Temperature float64 `json:"temperatureC"`
	Density     float64 `json:"densityKgM3"`
	Viscosity   float64 `json:"viscosityPaS"`
	Calculation string  `json:"calculation"`
}

// Density returns the water density in kg/m³ at temperature t (°C).
// The linear fit is applied outside [0,100] °C as well.
func Density(t float64) float64 {
	return ReferenceDensity * (1 - 0.0002*(t-ReferenceTemperature))
}

// Viscosity returns the dynamic viscosity in Pa·s at temperature t (°C).
func Viscosity(t float64) float64 {
	return 0.001 * math.Exp(-0.02*(t-ReferenceTemperature))
}

// Fluid evaluates both fluid properties at temperature t.
func Fluid(t float64) FluidState {
	rho := Density(t)
	mu := Viscosity(t)
	return FluidState{
		Temperature: t,
		Density:     rho,
		Viscosity:   mu,
		Calculation: "ρ = " + fixed(rho, 2) + " kg/m³, μ = " + fixed(mu, 6) + " Pa·s @ " + fixed(t, 2) + " °C",
	}
}

// Velocity converts a flow rate q (L/min) through a circular pipe of
// diameter d (m) into the mean velocity in m/s.
func Velocity(q, d float64) float64 {
	area := math.Pi * math.Pow(d/2, 2)
	return (q / lpmPerCubicMetrePerSecond) / area
}
