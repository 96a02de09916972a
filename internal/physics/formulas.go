package physics

import (
	"fmt"
	"math"
)

// HydrostaticPressure returns P = ρ·g·h at the base of a water column of
// height h (m) and temperature t (°C).
func HydrostaticPressure(h, t float64) Result {
	rho := Density(t)
	p := rho * Gravity * h
	return Result{
		Value:       p,
		Unit:        "Pa",
		Formula:     "P = ρ × g × h",
		Calculation: fmt.Sprintf("P = %s kg/m³ × %s m/s² × %s m = %s Pa", fixed(rho, 2), plain(Gravity), fixed(h, 2), fixed(p, 2)),
		Description: "Pressão hidrostática na base do recipiente",
	}
}

// Buoyancy returns E = ρ·g·V for a submerged volume v in m³.
func Buoyancy(v, t float64) Result {
	rho := Density(t)
	e := rho * Gravity * v
	return Result{
		Value:       e,
		Unit:        "N",
		Formula:     "E = ρ × g × V",
		Calculation: fmt.Sprintf("E = %s kg/m³ × %s m/s² × %s m³ = %s N", fixed(rho, 2), plain(Gravity), fixed(v, 4), fixed(e, 2)),
		Description: "Força de empuxo exercida pela água",
	}
}

// AccumulatedVolume integrates flow q (L/min) over dt minutes on top of
// prev litres. The result is not clamped.
func AccumulatedVolume(q, prev, dt float64) Result {
	v := prev + q*dt
	return Result{
		Value:       v,
		Unit:        "L",
		Formula:     "V = ∫ Q dt",
		Calculation: fmt.Sprintf("V = %s L + %s L/min × %s s = %s L", fixed(prev, 2), fixed(q, 2), fixed(dt*60, 1), fixed(v, 2)),
		Description: "Volume total acumulado no recipiente",
	}
}

// RegimeFor classifies a Reynolds number.
func RegimeFor(re float64) string {
	switch {
	case re < 2300:
		return RegimeLaminar
	case re < 4000:
		return RegimeTransition
	default:
		return RegimeTurbulent
	}
}

// Reynolds returns Re = ρ·v·D/μ for flow q (L/min) through a pipe of
// diameter d (m) at temperature t (°C).
func Reynolds(q, d, t float64) Result {
	rho := Density(t)
	mu := Viscosity(t)
	v := Velocity(q, d)
	re := (rho * v * d) / mu
	regime := RegimeFor(re)

	return Result{
		Value:       re,
		Unit:        "",
		Formula:     "Re = (ρ × v × D) / μ",
		Calculation: fmt.Sprintf("Re = (%s kg/m³ × %s m/s × %s m) / %s Pa·s = %s", fixed(rho, 2), fixed(v, 3), plain(d), fixed(mu, 6), fixed(re, 0)),
		Description: "Tipo de escoamento: " + regime,
		Regime:      regime,
	}
}

// HeadLoss returns the Darcy–Weisbach friction loss h_f = f·(L/D)·(v²/2g)
// for flow q (L/min) through a pipe of length l and diameter d (m).
func HeadLoss(q, l, d, f float64) Result {
	v := Velocity(q, d)
	hf := f * (l / d) * (math.Pow(v, 2) / (2 * Gravity))
	return Result{
		Value:   hf,
		Unit:    "m",
		Formula: "h_f = f × (L/D) × (v²/2g)",
		Calculation: fmt.Sprintf("h_f = %s × (%sm / %sm) × (%s² m²/s² / %s) = %s m",
			plain(f), plain(l), plain(d), fixed(v, 3), fixed(2*Gravity, 2), fixed(hf, 4)),
		Description: "Perda de carga por atrito no tubo",
	}
}

// BernoulliEnergy returns the total energy per unit volume
// E = P + ½ρv² + ρgh.
func BernoulliEnergy(p, v, h, t float64) Result {
	rho := Density(t)
	kinetic := 0.5 * rho * v * v
	potential := rho * Gravity * h
	e := p + kinetic + potential
	return Result{
		Value:       e,
		Unit:        "Pa",
		Formula:     "E = P + ½ρv² + ρgh",
		Calculation: fmt.Sprintf("E = %s + %s + %s = %s Pa", fixed(p, 2), fixed(kinetic, 2), fixed(potential, 2), fixed(e, 2)),
		Description: "Energia total do fluido (Bernoulli)",
	}
}

// InfiniteDuration is the Formatted text of a fill time that can't be reached.
const InfiniteDuration = "tempo infinito"

// FillTime returns the minutes needed to go from current to total litres
// at flow q (L/min). A non-positive flow yields +Inf instead of an error.
func FillTime(current, total, q float64) Result {
	const formula = "t = (V_total - V_atual) / Q"
	if q <= 0 {
		return Result{
			Value:       math.Inf(1),
			Unit:        "min",
			Formula:     formula,
			Calculation: "Vazão zero - " + InfiniteDuration,
			Description: "Tempo estimado para encher completamente",
			Formatted:   InfiniteDuration,
		}
	}

	t := (total - current) / q
	formatted := FormatMinutes(t)
	return Result{
		Value:       t,
		Unit:        "min",
		Formula:     formula,
		Calculation: fmt.Sprintf("t = (%s L - %s L) / %s L/min = %s min", fixed(total, 1), fixed(current, 2), fixed(q, 2), fixed(t, 2)),
		Description: "Tempo restante: " + formatted,
		Formatted:   formatted,
	}
}

// FormatMinutes breaks a duration in minutes into "{h}h {m}min {s}s",
// flooring each component.
func FormatMinutes(t float64) string {
	hours := math.Floor(t / 60)
	minutes := math.Floor(math.Mod(t, 60))
	seconds := math.Floor(math.Mod(t, 1) * 60)
	return fmt.Sprintf("%.0fh %.0fmin %.0fs", hours, minutes, seconds)
}

// FillPercentage returns current/total as a percentage capped at 100.
// There is no lower bound.
func FillPercentage(current, total float64) float64 {
	return math.Min(current/total*100, 100)
}
