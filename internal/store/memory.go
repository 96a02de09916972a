package store

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrUnknownMetric is returned for a metric that has no series.
	ErrUnknownMetric = errors.New("unknown metric")
)

// Metric names a tracked sensor quantity.
type Metric string

const (
	MetricFlow        Metric = "flow"
	MetricLevel       Metric = "level"
	MetricTemperature Metric = "temperature"
)

// Metrics lists every tracked metric in display order.
var Metrics = []Metric{MetricFlow, MetricLevel, MetricTemperature}

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// MemoryStore is a concurrency-safe set of bounded series, one per metric.
// Nothing is persisted.
type MemoryStore struct {
	mu sync.RWMutex

	series   map[Metric]*Series
	capacity int
}

// NewMemoryStore creates a store keeping capacity points per metric.
func NewMemoryStore(capacity int) *MemoryStore {
	s := &MemoryStore{
		series:   make(map[Metric]*Series, len(Metrics)),
		capacity: capacity,
	}
	for _, m := range Metrics {
		s.series[m] = NewSeries(capacity)
	}
	return s
}

// Append adds one point to the series of metric.
func (s *MemoryStore) Append(metric Metric, p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	series, ok := s.series[metric]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	series.Append(p)
	return nil
}

// Record appends one point per metric, all stamped with ts, under a
// single lock so readers never observe a partially recorded sample.
func (s *MemoryStore) Record(ts time.Time, values map[Metric]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for m := range values {
		if _, ok := s.series[m]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMetric, m)
		}
	}

	millis := ts.UnixMilli()
	for m, v := range values {
		s.series[m].Append(Point{Timestamp: millis, Value: v})
	}
	return nil
}

// Series returns a copy of the points of metric, oldest first.
func (s *MemoryStore) Series(metric Metric) ([]Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	return series.Points(), nil
}

// All returns a copy of every series.
func (s *MemoryStore) All() map[Metric][]Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Metric][]Point, len(s.series))
	for m, series := range s.series {
		out[m] = series.Points()
	}
	return out
}

// Capacity returns the per-metric capacity.
func (s *MemoryStore) Capacity() int {
	return s.capacity
}
