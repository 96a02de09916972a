package feeds

import (
	"context"
	"math/rand"
	"time"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

// MockFeed publishes a synthetic rig: flow 5-25 L/min, level 0.2-1.7 m,
// temperature 15-25 °C, one record per interval.
type MockFeed struct {
	interval time.Duration
	seed     int64
}

// NewMockFeed creates a mock feed. A zero seed is replaced by the clock.
func NewMockFeed(interval time.Duration, seed int64) *MockFeed {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &MockFeed{interval: interval, seed: seed}
}

func (f *MockFeed) Name() string {
	return "mock"
}

func (f *MockFeed) Subscribe(ctx context.Context, marker string, h tank.FeedHandler) (tank.Subscription, error) {
	if marker == "" {
		return nil, errMissingMarker
	}

	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := mockSnapshot(rng)
				h.OnSnapshot(&snap)
			}
		}
	}()

	return tank.NewSubscription(func() {
		cancel()
		<-done
	}), nil
}

func mockSnapshot(rng *rand.Rand) tank.Snapshot {
	return tank.Snapshot{
		WaterFlow:   rng.Float64()*20 + 5,
		WaterLevel:  rng.Float64()*1.5 + 0.2,
		Temperature: rng.Float64()*10 + 15,
	}
}
