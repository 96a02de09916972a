package volume

import (
	"math"
	"sync"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/physics"
)

// Step is the integration step of one tick, in minutes. It is applied on
// every tick regardless of the wall-clock time elapsed since the last one.
const Step = 1.0 / 60.0

// Accumulator integrates flow rate into stored volume with a fixed-step
// Euler scheme, clamped to the tank capacity. It only models filling:
// there is no drain and no reset.
type Accumulator struct {
	mu       sync.RWMutex
	volume   float64
	capacity float64
	ticks    uint64
}

// NewAccumulator returns an empty accumulator for a tank of capacity litres.
func NewAccumulator(capacity float64) *Accumulator {
	return &Accumulator{capacity: capacity}
}

// Tick advances the integration by one step using flowRate (L/min) and
// returns the new volume.
func (a *Accumulator) Tick(flowRate float64) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := physics.AccumulatedVolume(flowRate, a.volume, Step).Value
	a.volume = math.Min(next, a.capacity)
	a.ticks++
	return a.volume
}

// Volume returns the accumulated volume in litres.
func (a *Accumulator) Volume() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.volume
}

// Capacity returns the tank capacity in litres.
func (a *Accumulator) Capacity() float64 {
	return a.capacity
}

// Ticks returns how many steps have been applied.
func (a *Accumulator) Ticks() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ticks
}
