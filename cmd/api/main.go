package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fitturk/backend/config"
	"github.com/fitturk/backend/internal/crypto"
	"github.com/fitturk/backend/internal/database"
	"github.com/fitturk/backend/internal/docstore"
	"github.com/fitturk/backend/internal/logging"
	"github.com/fitturk/backend/internal/middleware"
	"github.com/fitturk/backend/internal/router"
	"github.com/fitturk/backend/internal/server"
	"github.com/fitturk/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	flush, err := logging.InitSentry(cfg.SentryDSN, cfg.Environment)
	if err != nil {
		logger.Fatal("sentry init failed", zap.Error(err))
	}
	defer flush()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	db, err := database.NewPostgres(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	mongoDB, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return err
	}
	defer func() { _ = mongoDB.Client().Disconnect(context.Background()) }()
	if err := database.EnsureIndexes(ctx, mongoDB); err != nil {
		return err
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.NewRedisClient(cfg.RedisURL, logger)
		if err != nil {
			// counters fall back to process memory, search pages go uncached
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			cache = nil
		} else {
			defer func() { _ = cache.Close() }()
		}
	}

	enc, err := crypto.NewEncryptorFromBase64(cfg.EncryptionKey)
	if err != nil {
		return err
	}

	generator, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer func() { _ = generator.Close() }()

	var images service.ImageStore
	if cfg.ImageUploadsEnabled() {
		s3, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		images = s3
	} else {
		logger.Info("S3 not configured, recipe image uploads disabled")
	}

	var counter middleware.Counter = middleware.NewMemoryCounter()
	if cache != nil {
		counter = middleware.NewRedisCounter(cache)
	}

	authService := service.NewAuthService(db, enc, cfg.SessionSecret, cfg.SessionTTL)
	handler, err := router.SetupRouter(router.Dependencies{
		Logger:          logger,
		AuthService:     authService,
		ProfileService:  service.NewProfileService(db, enc, logger),
		ChatService:     service.NewChatService(db, generator, logger, cfg.ChatTimeout),
		NoteService:     service.NewNoteService(docstore.NewNoteStore(mongoDB)),
		GoalService:     service.NewGoalService(docstore.NewGoalStore(mongoDB)),
		MealPlanService: service.NewMealPlanService(docstore.NewMealPlanStore(mongoDB), enc, logger),
		RecipeService:   service.NewRecipeService(docstore.NewRecipeStore(mongoDB), images, cache, logger),
		RateLimiter: middleware.NewRateLimiter(counter, middleware.RateLimitConfig{
			Window:    cfg.RateLimitWindow,
			Limit:     cfg.RateLimitMax,
			KeyPrefix: "ratelimit",
		}, logger),
		LoginThrottle:  middleware.NewLoginThrottle(6*time.Second, 5),
		AppURL:         cfg.AppURL,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		SecureCookies:  cfg.Environment == config.Production,
		SessionTTL:     cfg.SessionTTL,
	})
	if err != nil {
		return err
	}

	srv := server.New(handler, cfg.Addr(), logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
