package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Assessment tuning. WindowSize must match the shape the forecaster was
	// trained on; thresholds may be retuned per deployment.
	WindowSize      int
	HighThreshold   float64
	MediumThreshold float64

	// OpenWeather collaborator. Live assessment is enabled only when an API
	// key is present.
	OpenWeatherAPIKey    string
	OpenWeatherBaseURL   string
	OpenWeatherTimeout   time.Duration
	OpenWeatherCacheTTL  time.Duration
	OpenWeatherRateLimit float64 // requests per second toward the provider
	OpenWeatherEnabled   bool

	// Model bridge. When the URL is empty the service runs on the local
	// baseline predictors instead.
	ModelBridgeURL     string
	ModelBridgeTimeout time.Duration
	ModelBridgeEnabled bool

	// Optional Kafka alert sink, enabled when brokers are configured.
	KafkaBrokers    []string
	KafkaAlertTopic string
	KafkaEnabled    bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	windowSize, err := parseInt("WINDOW_SIZE", 40)
	if err != nil {
		return nil, err
	}

	highThreshold, err := parseFloat("HIGH_THRESHOLD", 8.0)
	if err != nil {
		return nil, err
	}

	mediumThreshold, err := parseFloat("MEDIUM_THRESHOLD", 6.5)
	if err != nil {
		return nil, err
	}

	owTimeout, err := parseDuration("OPENWEATHER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	owCacheTTL, err := parseDuration("OPENWEATHER_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	owRateLimit, err := parseFloat("OPENWEATHER_RATE_LIMIT", 1)
	if err != nil {
		return nil, err
	}

	bridgeTimeout, err := parseDuration("MODEL_BRIDGE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	bridgeURL := os.Getenv("MODEL_BRIDGE_URL")
	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WindowSize:      windowSize,
		HighThreshold:   highThreshold,
		MediumThreshold: mediumThreshold,

		OpenWeatherAPIKey:    apiKey,
		OpenWeatherBaseURL:   envOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OpenWeatherTimeout:   owTimeout,
		OpenWeatherCacheTTL:  owCacheTTL,
		OpenWeatherRateLimit: owRateLimit,
		OpenWeatherEnabled:   apiKey != "",

		ModelBridgeURL:     bridgeURL,
		ModelBridgeTimeout: bridgeTimeout,
		ModelBridgeEnabled: bridgeURL != "",

		KafkaBrokers:    brokers,
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "flood-risk-alerts"),
		KafkaEnabled:    len(brokers) > 0,
	}

	if cfg.WindowSize < 1 {
		return nil, errors.New("WINDOW_SIZE must be at least 1")
	}
	if cfg.MediumThreshold >= cfg.HighThreshold {
		return nil, errors.New("MEDIUM_THRESHOLD must be below HIGH_THRESHOLD")
	}
	if cfg.OpenWeatherRateLimit <= 0 {
		return nil, errors.New("OPENWEATHER_RATE_LIMIT must be positive")
	}
	if cfg.KafkaEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}
