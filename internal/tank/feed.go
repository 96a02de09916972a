package tank

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrFeedConnection wraps transport and subscription failures.
	ErrFeedConnection = errors.New("feed connection error")

	// ErrMalformedSnapshot is returned when a payload is not a JSON record.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// FeedHandler receives deliveries for one subscription. OnSnapshot gets
// nil when the marker exists but holds no data.
type FeedHandler interface {
	OnSnapshot(s *Snapshot)
	OnError(err error)
}

// Subscription is a live feed subscription. Unsubscribe releases it and
// may be called more than once.
type Subscription interface {
	Unsubscribe()
}

// Feed abstracts the real-time data source (MQTT, Firebase, Kafka, mock).
type Feed interface {
	Name() string
	Subscribe(ctx context.Context, marker string, h FeedHandler) (Subscription, error)
}

type onceSubscription struct {
	once   sync.Once
	cancel func()
}

func (s *onceSubscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// NewSubscription wraps cancel so it runs at most once.
func NewSubscription(cancel func()) Subscription {
	return &onceSubscription{cancel: cancel}
}
