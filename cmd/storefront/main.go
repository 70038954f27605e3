package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cache"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/events"
	h "github.com/fjod/go_cart/storefront/internal/http"
	"github.com/fjod/go_cart/storefront/internal/repository"
	"github.com/fjod/go_cart/storefront/internal/service"
	"github.com/fjod/go_cart/storefront/pkg/circuitbreaker"
	"github.com/fjod/go_cart/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("storefront stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx := context.Background()
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				zl.Warn("close failed", zap.Error(err))
			}
		}
	}()

	products, closeCatalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	if closeCatalog != nil {
		closers = append(closers, closeCatalog)
	}

	carts, users, closeStore, err := openStores(ctx, cfg, zl)
	if err != nil {
		return err
	}
	if closeStore != nil {
		closers = append(closers, closeStore)
	}

	if err := users.EnsureUser(ctx, repository.SampleUser()); err != nil {
		return fmt.Errorf("failed to seed sample user: %w", err)
	}

	var cartCache cache.CartCache = cache.NopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		closers = append(closers, redisClient.Close)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		zl.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))
		cartCache = cache.NewRedisCache(redisClient)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		closers = append(closers, kp.Close)
		publisher = kp
		zl.Info("publishing cart events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	router := h.NewRouter(h.Services{
		Catalog:     products,
		Carts:       service.NewCartService(carts, products, cartCache, publisher, zl),
		Users:       service.NewUserService(users, zl),
		Recommender: service.NewRecommender(users, products),
		Classifier:  service.NewClassifier(products),
		Assistant:   service.NewAssistant(),
	}, zl, cfg.RequestTimeout)

	otel.SetTextMapPropagator(propagation.TraceContext{})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zl.Info("storefront starting", zap.String("port", cfg.HTTPPort),
			zap.String("catalog", cfg.CatalogBackend), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	zl.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	zl.Info("server exited")
	return nil
}

func openCatalog(cfg *config.Config) (catalog.Store, func() error, error) {
	if cfg.CatalogBackend != config.BackendSQLite {
		return catalog.NewMemoryStore(catalog.SeedProducts()), nil, nil
	}

	store, err := catalog.NewSQLiteStore(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.RunMigrations(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}

func openStores(ctx context.Context, cfg *config.Config, zl *zap.Logger) (repository.CartRepository, repository.UserRepository, func() error, error) {
	if cfg.StoreBackend != config.BackendMongo {
		return repository.NewMemoryCartRepository(), repository.NewMemoryUserRepository(), nil, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	mongoDB, err := repository.ConnectMongoDB(connectCtx, repository.MongoOptions{
		URI:              cfg.MongoURI,
		Database:         cfg.MongoDBName,
		MaxPoolSize:      cfg.MongoMaxPoolSize,
		MinPoolSize:      cfg.MongoMinPoolSize,
		ConnectTimeout:   cfg.MongoConnectTimeout,
		SelectionTimeout: cfg.MongoSelectionTimeout,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	disconnect := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return mongoDB.Client().Disconnect(ctx)
	}
	zl.Info("connected to MongoDB", zap.String("database", cfg.MongoDBName))

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	if err := cartRepo.CreateIndexes(connectCtx); err != nil {
		_ = disconnect()
		return nil, nil, nil, err
	}

	breakerSettings := func(name string) circuitbreaker.Settings {
		s := repository.BreakerSettings(name)
		s.ConsecutiveFailures = cfg.BreakerFailures
		s.Timeout = cfg.BreakerTimeout
		return s
	}
	carts := repository.WithCartBreaker(cartRepo, circuitbreaker.New(breakerSettings("carts"), zl))
	users := repository.WithUserBreaker(repository.NewMongoUserRepository(mongoDB), circuitbreaker.New(breakerSettings("users"), zl))

	return carts, users, disconnect, nil
}
