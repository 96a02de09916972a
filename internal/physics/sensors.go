package physics

import "fmt"

// Direct sensor readings rendered as results, so the presentation layer
// can show them with the same card layout as derived quantities.

func FlowReading(q float64) Result {
	return Result{
		Value:       q,
		Unit:        "L/min",
		Formula:     "Q = volume / tempo",
		Calculation: fmt.Sprintf("Q = %s L/min (leitura direta do sensor)", fixed(q, 2)),
		Description: "Taxa de fluxo de água medida pelo sensor",
	}
}

func LevelReading(h float64) Result {
	return Result{
		Value:       h,
		Unit:        "m",
		Formula:     "h = altura medida",
		Calculation: fmt.Sprintf("h = %s m (leitura direta do sensor)", fixed(h, 2)),
		Description: "Altura da coluna de água no recipiente",
	}
}

func TemperatureReading(t float64) Result {
	return Result{
		Value:       t,
		Unit:        "°C",
		Formula:     "T = temperatura",
		Calculation: fmt.Sprintf("T = %s °C (leitura direta do sensor)", fixed(t, 2)),
		Description: "Temperatura da água no sistema",
	}
}
