// Package app wires configuration, clients, and services into one struct
// shared by the server and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/stockdash/internal/clients/eodhd"
	"github.com/bobmcallan/stockdash/internal/common"
	"github.com/bobmcallan/stockdash/internal/interfaces"
	"github.com/bobmcallan/stockdash/internal/services/analysis"
	"github.com/bobmcallan/stockdash/internal/services/chart"
)

// App holds all initialized services and clients.
type App struct {
	Config       *common.Config
	Logger       *common.Logger
	MarketClient interfaces.MarketDataClient
	Analysis     interfaces.AnalysisService
	Charts       interfaces.ChartRenderer
	StartupTime  time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, the market-data client, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	// Load configuration - check provided path, STOCKDASH_CONFIG, then
	// binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("STOCKDASH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "stockdash.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockdash.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	apiKey, err := common.ResolveAPIKey(config)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve EODHD API key: %w", err)
	}

	clientOpts := []eodhd.ClientOption{
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	}
	if config.Clients.EODHD.BaseURL != "" {
		clientOpts = append(clientOpts, eodhd.WithBaseURL(config.Clients.EODHD.BaseURL))
	}
	marketClient := eodhd.NewClient(apiKey, clientOpts...)

	analysisService := analysis.NewService(marketClient, logger,
		analysis.WithNewsLimit(config.Analysis.NewsLimit),
	)

	a := &App{
		Config:       config,
		Logger:       logger,
		MarketClient: marketClient,
		Analysis:     analysisService,
		Charts:       chart.NewRenderer(),
		StartupTime:  startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// NewTestApp builds an App around a supplied client, for tests.
func NewTestApp(client interfaces.MarketDataClient) *App {
	config := common.NewDefaultConfig()
	logger := common.NewSilentLogger()

	return &App{
		Config:       config,
		Logger:       logger,
		MarketClient: client,
		Analysis:     analysis.NewService(client, logger, analysis.WithNewsLimit(config.Analysis.NewsLimit)),
		Charts:       chart.NewRenderer(),
		StartupTime:  time.Now(),
	}
}
