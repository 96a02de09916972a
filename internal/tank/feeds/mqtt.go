package feeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

const (
	mqttQoS            = 1
	mqttWaitTimeout    = 10 * time.Second
	mqttDisconnectQuit = 250 // ms
)

var errMQTTTimeout = errors.New("mqtt operation timed out")

// MQTTFeed subscribes to <prefix>/<marker> on a broker. Each payload is
// the JSON marker record.
type MQTTFeed struct {
	broker    string
	prefix    string
	newClient func(*mqtt.ClientOptions) mqtt.Client
}

// NewMQTTFeed creates a feed for broker, e.g. tcp://localhost:1883.
func NewMQTTFeed(broker, prefix string) *MQTTFeed {
	return &MQTTFeed{
		broker:    broker,
		prefix:    prefix,
		newClient: mqtt.NewClient,
	}
}

func (f *MQTTFeed) Name() string {
	return "mqtt"
}

// Topic returns the topic carrying the marker record.
func (f *MQTTFeed) Topic(marker string) string {
	if f.prefix == "" {
		return marker
	}
	return f.prefix + "/" + marker
}

func (f *MQTTFeed) Subscribe(ctx context.Context, marker string, h tank.FeedHandler) (tank.Subscription, error) {
	if marker == "" {
		return nil, errMissingMarker
	}

	opts := mqtt.NewClientOptions().
		AddBroker(f.broker).
		SetClientID("hydro-monitor-" + uuid.NewString()).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			h.OnError(fmt.Errorf("%w: %v", tank.ErrFeedConnection, err))
		})

	client := f.newClient(opts)
	if err := wait(ctx, client.Connect()); err != nil {
		return nil, fmt.Errorf("connect %s: %w", f.broker, err)
	}

	topic := f.Topic(marker)
	if err := wait(ctx, client.Subscribe(topic, mqttQoS, messageHandler(h))); err != nil {
		client.Disconnect(mqttDisconnectQuit)
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	log.Info().Str("broker", f.broker).Str("topic", topic).Msg("mqtt subscribed")

	return tank.NewSubscription(func() {
		if client.IsConnected() {
			client.Unsubscribe(topic).WaitTimeout(mqttWaitTimeout)
		}
		client.Disconnect(mqttDisconnectQuit)
	}), nil
}

func wait(ctx context.Context, tok mqtt.Token) error {
	select {
	case <-tok.Done():
		return tok.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(mqttWaitTimeout):
		return errMQTTTimeout
	}
}

func messageHandler(h tank.FeedHandler) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		snap, err := tank.DecodeSnapshot(msg.Payload())
		if err != nil {
			h.OnError(fmt.Errorf("topic %s: %w", msg.Topic(), err))
			return
		}
		h.OnSnapshot(snap)
	}
}
