package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the SSI bridge
type Config struct {
	Database DatabaseConfig
	Kafka    KafkaConfig
	Streams  StreamsConfig
	Auth     AuthConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers           []string
	SubscriptionTopic string
	ChannelTopic      string
}

// StreamsConfig holds the streams gateway configuration
type StreamsConfig struct {
	GatewayURL string
	Timeout    time.Duration
}

// AuthConfig holds JWT and nonce configuration
type AuthConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
	NonceTTL      time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	streamsTimeout, err := time.ParseDuration(getEnv("STREAMS_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STREAMS_TIMEOUT: %w", err)
	}

	jwtExpiration, err := time.ParseDuration(getEnv("JWT_EXPIRATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION: %w", err)
	}

	nonceTTL, err := time.ParseDuration(getEnv("AUTH_NONCE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_NONCE_TTL: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "ssi_bridge_user"),
			Password: getEnv("DATABASE_PASSWORD", "ssi_bridge_pass"),
			DBName:   getEnv("DATABASE_NAME", "ssi_bridge_db"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:           strings.Split(getEnv("KAFKA_BROKERS", "localhost:9093"), ","),
			SubscriptionTopic: getEnv("KAFKA_TOPIC_SUBSCRIPTIONS", "ssi-bridge.subscriptions"),
			ChannelTopic:      getEnv("KAFKA_TOPIC_CHANNELS", "ssi-bridge.channels"),
		},
		Streams: StreamsConfig{
			GatewayURL: getEnv("STREAMS_GATEWAY_URL", "http://localhost:8080"),
			Timeout:    streamsTimeout,
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTExpiration: jwtExpiration,
			NonceTTL:      nonceTTL,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "ssi-bridge"),
			Port: getEnv("SERVICE_PORT", "3000"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DATABASE_HOST is required")
	}

	if c.Database.User == "" {
		return fmt.Errorf("DATABASE_USER is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Streams.GatewayURL == "" {
		return fmt.Errorf("STREAMS_GATEWAY_URL is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Out loads the configuration and exposes the sub-configs for fx DI
func Out() (*Config, *DatabaseConfig, *KafkaConfig, *StreamsConfig, *AuthConfig, *LoggingConfig, *ServiceConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, err
	}
	return cfg, &cfg.Database, &cfg.Kafka, &cfg.Streams, &cfg.Auth, &cfg.Logging, &cfg.Service, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
