package feeds

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

// messageReader is the subset of *kafka.Reader the feed uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaFeed consumes marker records from a topic. Messages are keyed by
// marker ID; other keys are skipped.
type KafkaFeed struct {
	brokers   []string
	topic     string
	groupID   string
	newReader func(kafka.ReaderConfig) messageReader
}

// NewKafkaFeed creates a feed on topic. An empty groupID gets a unique
// one so each process sees every record.
func NewKafkaFeed(brokers []string, topic, groupID string) *KafkaFeed {
	if groupID == "" {
		groupID = "hydro-monitor-" + uuid.NewString()
	}
	return &KafkaFeed{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		newReader: func(cfg kafka.ReaderConfig) messageReader {
			return kafka.NewReader(cfg)
		},
	}
}

func (f *KafkaFeed) Name() string {
	return "kafka"
}

func (f *KafkaFeed) Subscribe(ctx context.Context, marker string, h tank.FeedHandler) (tank.Subscription, error) {
	if marker == "" {
		return nil, errMissingMarker
	}

	reader := f.newReader(kafka.ReaderConfig{
		Brokers:     f.brokers,
		GroupID:     f.groupID,
		Topic:       f.topic,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.consume(ctx, reader, marker, h)
	}()

	log.Info().Strs("brokers", f.brokers).Str("topic", f.topic).Str("group", f.groupID).Msg("kafka reader started")
	return tank.NewSubscription(func() {
		cancel()
		<-done
		if err := reader.Close(); err != nil {
			log.Warn().Err(err).Msg("kafka reader close")
		}
	}), nil
}

// consume stops at the first fetch error: the feed does not retry.
func (f *KafkaFeed) consume(ctx context.Context, reader messageReader, marker string, h tank.FeedHandler) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				h.OnError(fmt.Errorf("%w: %v", tank.ErrFeedConnection, err))
			}
			return
		}

		if string(msg.Key) == marker {
			snap, decodeErr := tank.DecodeSnapshot(msg.Value)
			if decodeErr != nil {
				h.OnError(fmt.Errorf("offset %d: %w", msg.Offset, decodeErr))
			} else {
				h.OnSnapshot(snap)
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Debug().Err(err).Int64("offset", msg.Offset).Msg("kafka commit failed")
		}
	}
}
