package main

import (
	"github.com/serenity-health/serenity/internal/gateway"
	"github.com/serenity-health/serenity/internal/notify"
	"github.com/serenity-health/serenity/internal/server"
	"github.com/serenity-health/serenity/internal/session"
	"github.com/serenity-health/serenity/internal/storage"
	"github.com/serenity-health/serenity/pkg/config"
	"github.com/serenity-health/serenity/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		boot, _ := zap.NewProduction()
		boot.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize logger
	log := logger.New(cfg.Logging.FilePath)
	defer log.Sync()

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		log.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		log.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig, log)
		if err != nil {
			log.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the text-generation gateway
	gw := gateway.NewOpenAIGateway(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		log,
	)

	// Initialize the session pipeline
	sessions := session.New(store, gw, log)

	// Telegram notifications are optional
	var notifier *notify.Notifier
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		notifier, err = notify.New(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			log.Warn("Telegram notifications disabled", zap.Error(err))
		}
	}

	// Start the HTTP server
	srv := server.New(cfg, store, sessions, notifier, log)
	if err := srv.Run(); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
