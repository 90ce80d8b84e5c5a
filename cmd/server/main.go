package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"smsbridge/internal/config"
	"smsbridge/internal/handlers/webhook"
	"smsbridge/internal/services"
	"smsbridge/pkg/cache"
	"smsbridge/pkg/logger"
	"smsbridge/pkg/push"
	"smsbridge/pkg/sms"
	"smsbridge/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		Output:  cfg.App.LogOutput,
		Pretty:  cfg.App.LogPretty,
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := newSMSProvider(ctx, cfg.SMS)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize SMS provider")
	}

	tracker, redisCache := newUpdateTracker(cfg.Redis, appLogger)
	var health routes.HealthChecker
	if redisCache != nil {
		health = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				appLogger.WithError(err).Warn("Failed to close redis")
			}
		}()
	}

	notifier, err := push.NewTelegramProvider(cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, cfg.Telegram.Timeout)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize Telegram client")
	}

	bridge := services.NewBridgeService(
		cfg,
		services.NewCommandParser(),
		services.NewDeliveryService(cfg.SMS, provider, appLogger),
		notifier,
		tracker,
		appLogger,
	)

	router := routes.NewRouter(cfg, webhook.NewTelegramHandler(bridge, appLogger), health, appLogger)

	server := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(map[string]interface{}{
			"addr":        server.Addr,
			"provider":    provider.Name(),
			"fallback":    cfg.SMS.FallbackFrom != "",
			"auth_gate":   cfg.Telegram.AllowedUserID != "",
			"redis_dedup": cfg.Redis.Enabled,
		}).Info("Starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Graceful shutdown failed")
	}
	appLogger.Info("Shutdown complete")
}

func newSMSProvider(ctx context.Context, cfg *config.SMSConfig) (sms.SMSProvider, error) {
	switch cfg.Provider {
	case config.ProviderSNS:
		return sms.NewAWSSNSProvider(ctx, cfg.AWS.Region)
	default:
		return sms.NewTwilioProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber), nil
	}
}

// newUpdateTracker prefers Redis so dedup survives restarts and spans
// replicas; without it each process remembers only its own updates. The
// returned cache is nil when Redis is off or unreachable.
func newUpdateTracker(cfg *config.RedisConfig, appLogger *logger.Logger) (cache.UpdateTracker, *cache.RedisCache) {
	if !cfg.Enabled {
		return cache.NewMemoryUpdateTracker(cfg.DedupTTL), nil
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Host,
		Port:         cfg.Port,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, falling back to in-memory update tracking")
		return cache.NewMemoryUpdateTracker(cfg.DedupTTL), nil
	}

	return cache.NewRedisUpdateTracker(redisCache, cfg.DedupTTL), redisCache
}
