// Package feeds implements tank.Feed over the supported transports.
package feeds

import (
	"fmt"
	"net/http"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/config"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

// New builds the feed selected by cfg.Type.
func New(cfg config.FeedConfig, client *http.Client) (tank.Feed, error) {
	switch cfg.Type {
	case "mock":
		return NewMockFeed(cfg.MockInterval, 0), nil
	case "mqtt":
		return NewMQTTFeed(cfg.MQTTBroker, cfg.MQTTTopicPrefix), nil
	case "firebase":
		return NewFirebaseFeed(cfg.FirebaseURL, cfg.FirebaseAuth, cfg.FirebasePollInterval, client), nil
	case "kafka":
		return NewKafkaFeed(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFeed, cfg.Type)
	}
}
