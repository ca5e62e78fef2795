package app

import (
	"time"

	"github.com/rs/zerolog"

	"asinwatch/internal/alerting"
	"asinwatch/internal/config"
	"asinwatch/internal/fetcher"
	"asinwatch/internal/history"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newFetcher() fetcher.ProductFetcher {
	return fetcher.NewClient(fetcher.ClientOptions{
		BaseURL:   a.Config.API.BaseURL,
		AccessKey: a.Config.API.AccessKey,
		Domain:    a.Config.API.Domain,
		Timeout:   a.Config.API.RequestTimeout,
		UserAgent: a.Config.API.UserAgent,
	}, a.Logger)
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Watch.Telegram.Enabled {
		cfg := a.Config.Watch.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

func (a *App) seriesIndexes() map[history.Slot]int {
	if indexes := a.Config.SeriesIndexes(); indexes != nil {
		return indexes
	}
	return fetcher.DefaultSeriesIndexes()
}

// LookupOptions configure a single lookup.
type LookupOptions struct {
	ASIN string
	// Window overrides the configured trailing window when positive.
	Window time.Duration
}

// ExportOptions hold parameters for exporting one product's history.
type ExportOptions struct {
	ASIN      string
	PNGPath   string
	CSVPath   string
	MaxPoints int
	// FullHistory exports the whole payload instead of the trailing window.
	FullHistory bool
}

// WatchOptions configure the watch command.
type WatchOptions struct {
	ASIN         string
	PriceFloor   float64
	ThresholdPct float64
}
