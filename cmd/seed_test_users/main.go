package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/fitturk/backend/config"
	"github.com/fitturk/backend/internal/crypto"
	"github.com/fitturk/backend/internal/database"
	"github.com/fitturk/backend/internal/logging"
	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/types"
)

const testPassword = "testpassword123"

var testUsers = []types.RegisterRequest{
	{Name: "Ayşe Yılmaz", Email: "ayse@example.com", Password: testPassword},
	{Name: "Mehmet Demir", Email: "mehmet@example.com", Password: testPassword},
	{Name: "Deniz Kaya", Email: "deniz@example.com", Password: testPassword},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Environment == config.Production {
		log.Fatal("refusing to seed test users in production")
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.NewPostgres(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	enc, err := crypto.NewEncryptorFromBase64(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal("invalid encryption key", zap.Error(err))
	}

	auth := service.NewAuthService(db, enc, cfg.SessionSecret, cfg.SessionTTL)
	ctx := context.Background()
	for i := range testUsers {
		u := testUsers[i]
		err := auth.Register(ctx, &u)
		switch {
		case err == nil:
			logger.Info("created test user", zap.String("email", u.Email))
		case service.KindOf(err) == service.KindConflict:
			logger.Info("test user already exists", zap.String("email", u.Email))
		default:
			logger.Fatal("failed to create test user", zap.String("email", u.Email), zap.Error(err))
		}
	}

	logger.Info("test users ready", zap.String("password", testPassword))
}
