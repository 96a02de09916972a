package store

// DefaultCapacity is the number of points kept per metric.
const DefaultCapacity = 20

// Point is one sample of a metric.
type Point struct {
	Timestamp int64   `json:"timestamp"` // epoch millis
	Value     float64 `json:"value"`
}

// Series is a fixed-capacity ring of points. Appending beyond capacity
// evicts the oldest point. It is not safe for concurrent use; MemoryStore
// guards it.
type Series struct {
	points []Point
	start  int // index of the oldest point
	size   int
}

// NewSeries creates a Series holding at most capacity points.
// Capacity below 1 is raised to 1.
func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{points: make([]Point, capacity)}
}

// Append adds p as the newest point.
func (s *Series) Append(p Point) {
	capacity := len(s.points)
	if s.size < capacity {
		s.points[(s.start+s.size)%capacity] = p
		s.size++
		return
	}
	// full: overwrite the oldest slot and advance
	s.points[s.start] = p
	s.start = (s.start + 1) % capacity
}

// Points returns a copy of the series, oldest first.
func (s *Series) Points() []Point {
	out := make([]Point, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.points[(s.start+i)%len(s.points)]
	}
	return out
}

// Len returns the number of stored points.
func (s *Series) Len() int { return s.size }

// Cap returns the capacity.
func (s *Series) Cap() int { return len(s.points) }
