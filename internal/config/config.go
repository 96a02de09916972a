package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// FeedConfig selects and configures the sensor feed.
type FeedConfig struct {
	Type   string `validate:"oneof=mock mqtt firebase kafka"`
	Marker string `validate:"required"`

	MQTTBroker      string `validate:"required_if=Type mqtt"`
	MQTTTopicPrefix string

	FirebaseURL          string `validate:"required_if=Type firebase,omitempty,url"`
	FirebaseAuth         string
	FirebasePollInterval time.Duration `validate:"gt=0"`

	KafkaBrokers []string `validate:"required_if=Type kafka"`
	KafkaTopic   string   `validate:"required_if=Type kafka"`
	KafkaGroupID string

	MockInterval time.Duration `validate:"gt=0"`
}

type AppConfig struct {
	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"oneof=trace debug info warn error"`

	Feed FeedConfig

	// BuoyancyRadius is the cross-section radius (m) used for the
	// submerged volume in the buoyancy computation.
	BuoyancyRadius float64 `validate:"gt=0"`

	GeocoderAPIKey string
	HTTPTimeout    time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file loaded")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))

	var err error
	feed := FeedConfig{
		Type:            strings.ToLower(getenvDefault("FEED_TYPE", "mock")),
		Marker:          getenvDefault("MARKER_ID", "marker_0"),
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTTopicPrefix: getenvDefault("MQTT_TOPIC_PREFIX", "markers"),
		FirebaseURL:     os.Getenv("FIREBASE_URL"),
		FirebaseAuth:    os.Getenv("FIREBASE_AUTH"),
		KafkaBrokers:    splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getenvDefault("KAFKA_TOPIC", "markers"),
		KafkaGroupID:    os.Getenv("KAFKA_GROUP_ID"),
	}
	if feed.FirebasePollInterval, err = getenvDuration("FIREBASE_POLL_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if feed.MockInterval, err = getenvDuration("MOCK_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}
	cfg.Feed = feed

	if cfg.BuoyancyRadius, err = getenvFloat("BUOYANCY_RADIUS_M", 0.25); err != nil {
		return nil, err
	}
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
