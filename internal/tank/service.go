package tank

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/physics"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/store"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/volume"
)

// ErrNoReading is returned by Latest before the first snapshot arrives.
var ErrNoReading = errors.New("no reading received yet")

// Observer is notified of state changes, typically to export metrics.
type Observer interface {
	ObserveReading(r SensorReading)
	ObserveVolume(volumeL, fillPct float64)
	ObserveFeedError()
}

// Locator resolves marker coordinates into a display address.
type Locator interface {
	Locate(ctx context.Context, lat, lon float64) (string, error)
}

// Clock fires job periodically until stopped.
type Clock interface {
	Start(job func()) error
	Stop()
}

// Option configures a Service.
type Option func(*Service)

// WithObserver registers an Observer.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLocator enables address resolution in Status.
func WithLocator(l Locator) Option {
	return func(s *Service) { s.locator = l }
}

// WithNow replaces the wall clock used to timestamp readings.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service holds the monitoring state for one marker. Snapshot handling
// and the accumulation tick touch disjoint state: the latest reading
// (guarded by mu) and the accumulator (guarded internally).
type Service struct {
	rig    Rig
	marker string

	acc     *volume.Accumulator
	history *store.MemoryStore

	observer Observer
	locator  Locator
	now      func() time.Time

	mu      sync.RWMutex
	reading SensorReading
	hasData bool
	status  FeedStatus
}

// NewService creates a Service for marker with an empty tank.
func NewService(rig Rig, marker string, opts ...Option) *Service {
	s := &Service{
		rig:     rig,
		marker:  marker,
		acc:     volume.NewAccumulator(rig.TankCapacityL),
		history: store.NewMemoryStore(store.DefaultCapacity),
		now:     time.Now,
		reading: SensorReading{
			FlowRate:    DefaultFlowRate,
			Level:       DefaultLevel,
			Temperature: DefaultTemperature,
		},
		status: FeedStatus{Marker: marker, State: FeedConnecting},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rig returns the installation geometry.
func (s *Service) Rig() Rig { return s.rig }

// Marker returns the monitored marker ID.
func (s *Service) Marker() string { return s.marker }

// HandleSnapshot replaces the latest reading and appends one history
// point per metric. A nil snapshot means the marker holds no data: the
// reading and history are left as they are.
func (s *Service) HandleSnapshot(snap *Snapshot) {
	if snap == nil {
		s.mu.Lock()
		s.status.State = FeedNoData
		s.status.Error = ""
		s.mu.Unlock()
		log.Debug().Str("marker", s.marker).Msg("marker has no data")
		return
	}

	reading, info := Normalize(*snap, s.now())

	s.mu.Lock()
	s.reading = reading
	s.hasData = true
	ts := reading.ReceivedAt
	s.status.State = FeedConnected
	s.status.Error = ""
	s.status.LastUpdate = &ts
	s.status.Info = info
	s.mu.Unlock()

	err := s.history.Record(reading.ReceivedAt, map[store.Metric]float64{
		store.MetricFlow:        reading.FlowRate,
		store.MetricLevel:       reading.Level,
		store.MetricTemperature: reading.Temperature,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to record history")
	}

	if s.observer != nil {
		s.observer.ObserveReading(reading)
	}
}

// HandleFeedError records a delivery failure as status. State is not
// touched and nothing is retried.
func (s *Service) HandleFeedError(err error) {
	if err == nil {
		return
	}

	s.mu.Lock()
	s.status.State = FeedError
	s.status.Error = err.Error()
	s.mu.Unlock()

	log.Warn().Err(err).Str("marker", s.marker).Msg("feed error")
	if s.observer != nil {
		s.observer.ObserveFeedError()
	}
}

// Tick advances the accumulator by one step using the latest flow rate
// and returns the new volume.
func (s *Service) Tick() float64 {
	s.mu.RLock()
	flow := s.reading.FlowRate
	s.mu.RUnlock()

	v := s.acc.Tick(flow)
	if s.observer != nil {
		s.observer.ObserveVolume(v, physics.FillPercentage(v, s.rig.TankCapacityL))
	}
	return v
}

// Latest returns the last normalized reading.
func (s *Service) Latest() (SensorReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasData {
		return SensorReading{}, ErrNoReading
	}
	return s.reading, nil
}

// Reading returns the reading the physics are computed from. Before the
// first snapshot this is the all-defaults reading.
func (s *Service) Reading() SensorReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reading
}

// Volume returns the accumulated volume in litres.
func (s *Service) Volume() float64 {
	return s.acc.Volume()
}

// Physics recomputes every derived quantity from the current state.
func (s *Service) Physics() map[string]physics.Result {
	return s.physicsFor(s.Reading(), s.acc.Volume())
}

func (s *Service) physicsFor(r SensorReading, vol float64) map[string]physics.Result {
	return map[string]physics.Result{
		QuantityHydrostaticPressure: physics.HydrostaticPressure(r.Level, r.Temperature),
		QuantityBuoyancy:            physics.Buoyancy(s.rig.SubmergedVolume(r.Level), r.Temperature),
		QuantityReynolds:            physics.Reynolds(r.FlowRate, s.rig.PipeDiameterM, r.Temperature),
		QuantityHeadLoss:            physics.HeadLoss(r.FlowRate, s.rig.PipeLengthM, s.rig.PipeDiameterM, s.rig.FrictionFactor),
		QuantityFillTime:            physics.FillTime(vol, s.rig.TankCapacityL, r.FlowRate),
	}
}

// Quantity returns one derived quantity by name.
func (s *Service) Quantity(name string) (physics.Result, bool) {
	r, ok := s.Physics()[name]
	return r, ok
}

func sensorsFor(r SensorReading) map[store.Metric]physics.Result {
	return map[store.Metric]physics.Result{
		store.MetricFlow:        physics.FlowReading(r.FlowRate),
		store.MetricLevel:       physics.LevelReading(r.Level),
		store.MetricTemperature: physics.TemperatureReading(r.Temperature),
	}
}

// Gauge returns the tank fill state.
func (s *Service) Gauge() Gauge {
	return s.gaugeFor(s.Reading(), s.acc.Volume())
}

func (s *Service) gaugeFor(r SensorReading, vol float64) Gauge {
	pct := physics.FillPercentage(vol, s.rig.TankCapacityL)
	return Gauge{
		Percentage: pct,
		VolumeL:    vol,
		CapacityL:  s.rig.TankCapacityL,
		LevelM:     r.Level,
		Band:       BandFor(pct),
	}
}

// History returns the points of one metric, oldest first.
func (s *Service) History(metric store.Metric) ([]store.Point, error) {
	return s.history.Series(metric)
}

// Histories returns every series keyed by metric.
func (s *Service) Histories() map[store.Metric][]store.Point {
	return s.history.All()
}

// Status returns the feed status, resolving the marker address when a
// Locator is configured and coordinates are known.
func (s *Service) Status(ctx context.Context) FeedStatus {
	s.mu.RLock()
	st := s.status
	s.mu.RUnlock()
	return s.locate(ctx, st)
}

func (s *Service) locate(ctx context.Context, st FeedStatus) FeedStatus {
	if s.locator == nil || st.Info.Latitude == nil || st.Info.Longitude == nil {
		return st
	}
	addr, err := s.locator.Locate(ctx, *st.Info.Latitude, *st.Info.Longitude)
	if err != nil {
		log.Debug().Err(err).Msg("reverse geocoding failed")
		return st
	}
	st.Info.Address = addr
	return st
}

// Dashboard assembles a full view from a single read of the state.
func (s *Service) Dashboard(ctx context.Context) Dashboard {
	s.mu.RLock()
	r := s.reading
	hasData := s.hasData
	st := s.status
	s.mu.RUnlock()

	vol := s.acc.Volume()
	return Dashboard{
		Reading: r,
		HasData: hasData,
		VolumeL: vol,
		Tank:    s.gaugeFor(r, vol),
		Fluid:   physics.Fluid(r.Temperature),
		Sensors: sensorsFor(r),
		Physics: s.physicsFor(r, vol),
		History: s.history.All(),
		Status:  s.locate(ctx, st),
		Rig:     s.rig,
	}
}

// Run subscribes to feed and starts the tick clock, then blocks until
// ctx is done. Both are released on return. A subscription failure is
// recorded as feed status and does not stop the clock.
func (s *Service) Run(ctx context.Context, feed Feed, clock Clock) error {
	if err := clock.Start(func() { s.Tick() }); err != nil {
		return fmt.Errorf("start tick clock: %w", err)
	}
	defer clock.Stop()

	log.Info().Str("feed", feed.Name()).Str("marker", s.marker).Msg("subscribing to marker")
	sub, err := feed.Subscribe(ctx, s.marker, feedHandler{s})
	if err != nil {
		s.HandleFeedError(fmt.Errorf("%w: %v", ErrFeedConnection, err))
	} else {
		defer sub.Unsubscribe()
	}

	<-ctx.Done()
	log.Info().Str("marker", s.marker).Msg("monitoring stopped")
	return nil
}

type feedHandler struct{ s *Service }

func (h feedHandler) OnSnapshot(snap *Snapshot) { h.s.HandleSnapshot(snap) }
func (h feedHandler) OnError(err error)         { h.s.HandleFeedError(err) }
