// Package config loads storefront settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "STOREFRONT"

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	Env             string        `envconfig:"ENV" default:"development"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	CatalogBackend string `envconfig:"CATALOG_BACKEND" default:"memory"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"storefront.db"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	MongoURI     string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName  string `envconfig:"MONGO_DB_NAME" default:"storefront"`

	MongoMaxPoolSize      uint64        `envconfig:"MONGO_MAX_POOL_SIZE" default:"100"`
	MongoMinPoolSize      uint64        `envconfig:"MONGO_MIN_POOL_SIZE" default:"10"`
	MongoConnectTimeout   time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
	MongoSelectionTimeout time.Duration `envconfig:"MONGO_SELECTION_TIMEOUT" default:"5s"`

	// Empty RedisAddr disables the cart cache.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// Empty KafkaBrokers disables cart events.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"cart-events"`

	BreakerTimeout  time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
	BreakerFailures uint32        `envconfig:"BREAKER_FAILURES" default:"5"`
}

// Load reads an optional .env file from the working directory, then decodes
// STOREFRONT_* variables. Variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT must not be empty"))
	}
	switch c.CatalogBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite catalog"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_BACKEND %q", c.CatalogBackend))
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendMongo:
		if c.MongoURI == "" || c.MongoDBName == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB_NAME are required for the mongo store"))
		}
		if c.MongoMaxPoolSize > 0 && c.MongoMinPoolSize > c.MongoMaxPoolSize {
			errs = append(errs, errors.New("MONGO_MIN_POOL_SIZE must not exceed MONGO_MAX_POOL_SIZE"))
		}
		if c.MongoConnectTimeout <= 0 {
			errs = append(errs, errors.New("MONGO_CONNECT_TIMEOUT must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
