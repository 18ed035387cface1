package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env              string
	HTTPAddr         string
	StorageMode      string
	MongoURI         string
	MongoDB          string
	KafkaBrokers     []string
	KafkaTopicPrefix string
	EventsTopic      string
	TariffPath       string
	ShutdownTimeout  time.Duration
}

// Load parses configuration from the current environment. Mongo and Kafka
// are only required when the matching mode is selected, so a dev server can
// run entirely in memory.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", "memory")),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "farmstay"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		TariffPath:       getEnv("TARIFF_PATH", ""),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.EventsTopic = cfg.KafkaTopicPrefix + getEnv("RESERVATION_EVENTS_TOPIC", "reservation.events")

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown

	switch cfg.StorageMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_MODE %q", cfg.StorageMode)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
