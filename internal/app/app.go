// Package app wires configuration, storage, clients and services into
// a single application object shared by the server binary and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/chatfolio/internal/clients/yahoo"
	"github.com/bobmcallan/chatfolio/internal/common"
	"github.com/bobmcallan/chatfolio/internal/interfaces"
	"github.com/bobmcallan/chatfolio/internal/services/analytics"
	"github.com/bobmcallan/chatfolio/internal/services/chat"
	"github.com/bobmcallan/chatfolio/internal/storage"
)

// App holds all initialized services, clients and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	MarketClient     interfaces.MarketDataClient
	AnalyticsService interfaces.AnalyticsService
	ChatService      interfaces.ChatService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, the market data
// client and the services. configPath may be empty, in which case the
// default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Resolve config: provided path, CHATFOLIO_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("CHATFOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "chatfolio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/chatfolio.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	marketClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	analyticsService := analytics.NewService(storageManager, marketClient, logger)
	chatService := chat.NewService(storageManager, analyticsService, marketClient, logger)

	logger.Info().
		Str("version", common.GetFullVersion()).
		Str("environment", config.Environment).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		MarketClient:     marketClient,
		AnalyticsService: analyticsService,
		ChatService:      chatService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
}
