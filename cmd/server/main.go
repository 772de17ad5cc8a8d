package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/songcast/internal/adapter/cache"
	"github.com/seu-repo/songcast/internal/adapter/catalog"
	"github.com/seu-repo/songcast/internal/adapter/external/notification"
	"github.com/seu-repo/songcast/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/songcast/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/songcast/internal/adapter/vault"
	"github.com/seu-repo/songcast/internal/observability/telemetry"
	"github.com/seu-repo/songcast/internal/ports"
	"github.com/seu-repo/songcast/internal/service/fulfillment"
	"github.com/seu-repo/songcast/pkg/config"
)

const (
	serviceName    = "songcast-fulfillment"
	serviceVersion = "v1.0.0"

	defaultJaegerEndpoint = "http://jaeger:14268/api/traces"
	cacheCleanupInterval  = 5 * time.Minute
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Songcast Fulfillment",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		endpoint := cfg.OpenTelemetry.Jaeger.Endpoint
		if endpoint == "" {
			endpoint = defaultJaegerEndpoint
		}
		tracerProvider, err := telemetry.InitTracer(serviceName, endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize Cache (Redis when configured, in-memory otherwise)
	var tokenCache ports.Cache
	if cfg.Redis.URL != "" {
		tokenCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	} else {
		logger.Info("No Redis URL configured, using in-memory cache")
		tokenCache = cache.NewLocalCache(cacheCleanupInterval, logger)
	}
	defer tokenCache.Close()

	// 5. Load push credentials (Vault when enabled, file otherwise)
	rawKey, err := loadServiceAccountKey(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load service account key", zap.Error(err))
	}
	serviceKey, err := notification.ParseServiceAccountKey(rawKey)
	if err != nil {
		logger.Fatal("Failed to parse service account key", zap.Error(err))
	}

	// 6. Initialize Notification Side-Channel
	tokenSource, err := notification.NewTokenSource(serviceKey, tokenCache, logger)
	if err != nil {
		logger.Fatal("Failed to initialize token source", zap.Error(err))
	}
	notifier := notification.NewPushNotifier(notification.Config{
		Endpoint:        cfg.Notification.Endpoint,
		RecipientUserID: cfg.Notification.RecipientUserID,
		Sandbox:         cfg.Notification.Sandbox,
		Timeout:         cfg.Notification.Timeout,
	}, tokenSource, logger)

	// 7. Initialize Song Catalog and Dispatcher
	songCatalog := catalog.NewMemoryCatalog(logger)
	dispatcher := fulfillment.NewDispatcher(songCatalog, notifier, logger)

	// 8. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(middleware.CircuitBreaker(logger))

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := tokenCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Webhook route
	fulfillmentHandler := handlers.NewFulfillmentHandler(dispatcher, cfg.Notification.Timeout, logger)
	app.Post("/fulfillment", fulfillmentHandler.Handle)

	// 9. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func loadServiceAccountKey(cfg *config.Config, logger *zap.Logger) ([]byte, error) {
	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			return nil, err
		}
		logger.Info("Loading push credentials from Vault")
		return sm.GetServiceAccountKey()
	}

	logger.Info("Loading push credentials from file",
		zap.String("path", cfg.Notification.CredentialsPath))
	return os.ReadFile(cfg.Notification.CredentialsPath)
}
