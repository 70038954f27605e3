package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, BackendMemory, cfg.CatalogBackend)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint32(5), cfg.BreakerFailures)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, uint64(100), cfg.MongoMaxPoolSize)
	assert.Equal(t, uint64(10), cfg.MongoMinPoolSize)
	assert.Equal(t, 10*time.Second, cfg.MongoConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.MongoSelectionTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "9090")
	t.Setenv("STOREFRONT_STORE_BACKEND", "mongo")
	t.Setenv("STOREFRONT_MONGO_URI", "mongodb://db:27017")
	t.Setenv("STOREFRONT_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "3s")
	t.Setenv("STOREFRONT_MONGO_MAX_POOL_SIZE", "20")
	t.Setenv("STOREFRONT_MONGO_MIN_POOL_SIZE", "2")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint64(20), cfg.MongoMaxPoolSize)
	assert.Equal(t, uint64(2), cfg.MongoMinPoolSize)
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "soon")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTPPort:        "8080",
			CatalogBackend:  BackendSQLite,
			SQLitePath:      "x.db",
			StoreBackend:    BackendMemory,
			RequestTimeout:  time.Second,
			ShutdownTimeout: time.Second,
			KafkaTopic:      "cart-events",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown catalog", mutate: func(c *Config) { c.CatalogBackend = "postgres" }, wantErr: "CATALOG_BACKEND"},
		{name: "unknown store", mutate: func(c *Config) { c.StoreBackend = "files" }, wantErr: "STORE_BACKEND"},
		{name: "sqlite without path", mutate: func(c *Config) { c.SQLitePath = "" }, wantErr: "SQLITE_PATH"},
		{name: "mongo without db", mutate: func(c *Config) { c.StoreBackend = BackendMongo; c.MongoURI = "mongodb://x" }, wantErr: "MONGO_DB_NAME"},
		{name: "mongo pool inverted", mutate: func(c *Config) {
			c.StoreBackend = BackendMongo
			c.MongoURI = "mongodb://x"
			c.MongoDBName = "db"
			c.MongoConnectTimeout = time.Second
			c.MongoMaxPoolSize = 5
			c.MongoMinPoolSize = 10
		}, wantErr: "MONGO_MIN_POOL_SIZE"},
		{name: "mongo without connect timeout", mutate: func(c *Config) {
			c.StoreBackend = BackendMongo
			c.MongoURI = "mongodb://x"
			c.MongoDBName = "db"
		}, wantErr: "MONGO_CONNECT_TIMEOUT"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "REQUEST_TIMEOUT"},
		{name: "brokers without topic", mutate: func(c *Config) { c.KafkaBrokers = []string{"k:9092"}; c.KafkaTopic = "" }, wantErr: "KAFKA_TOPIC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
