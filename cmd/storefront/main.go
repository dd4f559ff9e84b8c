package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/address"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/cart"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/catalog"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/checkout"
	h "github.com/trongtriet5/metadent-e-commerce-website/internal/http"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/order"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	AddressBaseURL  string
	StorageBackend  string
	RedisAddr       string
	MongoURI        string
	MongoDatabase   string
	CartNamespace   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8000/api"),
		AddressBaseURL:  getEnv("ADDRESS_API_BASE_URL", address.DefaultBaseURL),
		StorageBackend:  getEnv("CART_STORAGE", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "storefront"),
		CartNamespace:   getEnv("CART_NAMESPACE", cart.DefaultNamespace),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	storage, cleanup, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	defer cleanup()

	// Outbound calls share one instrumented transport.
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.RequestTimeout,
	}

	catalogClient := catalog.NewHTTPClient(cfg.APIBaseURL, httpClient)
	orderClient := order.NewHTTPClient(cfg.APIBaseURL, httpClient, logger)
	addressClient := address.NewCachingClient(
		address.NewHTTPClient(cfg.AddressBaseURL, httpClient), logger)

	store := cart.NewStore(ctx, storage, logger)
	controller := checkout.NewController(store, addressClient, orderClient, logger)

	cartHandler := h.NewCartHandler(store, catalogClient, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(catalogClient, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(controller, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
			r.Get("/category/{category}", productHandler.ListByCategory)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{line_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{line_id}", cartHandler.RemoveLine)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.GetForm)
			r.Get("/provinces", checkoutHandler.LoadProvinces)
			r.Post("/fields", checkoutHandler.SetField)
			r.Post("/blur", checkoutHandler.Blur)
			r.Post("/province", checkoutHandler.SelectProvince)
			r.Post("/district", checkoutHandler.SelectDistrict)
			r.Post("/ward", checkoutHandler.SelectWard)
			r.Post("/submit", checkoutHandler.Submit)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// newStorage picks the cart persistence backend from config. The returned
// cleanup closes whatever connection the backend holds.
func newStorage(ctx context.Context, cfg *Config) (cart.Storage, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		return cart.NewRedisStorage(client, cfg.CartNamespace), func() { client.Close() }, nil

	case "mongo":
		client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		storage := cart.NewMongoStorage(client.Database(cfg.MongoDatabase), cfg.CartNamespace)
		if err := storage.CreateIndexes(ctx); err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Disconnect(disconnectCtx)
		}
		return storage, cleanup, nil

	default:
		return cart.NewMemoryStorage(), func() {}, nil
	}
}
