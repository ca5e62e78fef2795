package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"asinwatch/internal/history"
	"asinwatch/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Logging logging.Config `mapstructure:"logging"`
	API     APIConfig      `mapstructure:"api"`
	Decode  DecodeConfig   `mapstructure:"decode"`
	Watch   WatchConfig    `mapstructure:"watch"`
	Export  ExportConfig   `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// APIConfig covers catalog-history API connectivity.
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	AccessKey      string        `mapstructure:"access_key"`
	Domain         int           `mapstructure:"domain"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// DecodeConfig tunes the history decoder: the trailing window for the
// minimum-price search, per-metric candidate priority, and the vendor's
// series-index assignment.
type DecodeConfig struct {
	Window                  time.Duration  `mapstructure:"window"`
	RankCandidates          []string       `mapstructure:"rank_candidates"`
	CurrentPriceCandidates  []string       `mapstructure:"current_price_candidates"`
	WindowedPriceCandidates []string       `mapstructure:"windowed_price_candidates"`
	SeriesIndexes           map[string]int `mapstructure:"series_indexes"`
}

// WatchConfig governs the periodic re-lookup mode.
type WatchConfig struct {
	Interval      time.Duration  `mapstructure:"interval"`
	AlignToBucket bool           `mapstructure:"align_to_bucket"`
	StartupDelay  time.Duration  `mapstructure:"startup_delay"`
	PriceFloor    float64        `mapstructure:"price_floor"`
	ThresholdPct  float64        `mapstructure:"threshold_pct"`
	Telegram      TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig describes the Telegram notification channel.
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ASINWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "asinwatch")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("api.base_url", "https://api.keepa.com")
	v.SetDefault("api.domain", 1)
	v.SetDefault("api.request_timeout", "10s")
	v.SetDefault("api.user_agent", "asinwatch/1.0")

	v.SetDefault("decode.window", "720h")
	v.SetDefault("decode.rank_candidates", []string{
		string(history.SlotMainCategoryRank),
		string(history.SlotSubCategoryRank),
	})
	v.SetDefault("decode.current_price_candidates", []string{
		string(history.SlotAmazonPrice),
		string(history.SlotBuyBoxPrice),
		string(history.SlotNewPrice),
	})
	v.SetDefault("decode.windowed_price_candidates", []string{
		string(history.SlotAmazonPrice),
		string(history.SlotBuyBoxPrice),
		string(history.SlotNewPrice),
	})

	v.SetDefault("watch.interval", "15m")
	v.SetDefault("watch.align_to_bucket", true)
	v.SetDefault("watch.startup_delay", "0s")
	v.SetDefault("watch.threshold_pct", 5.0)
	v.SetDefault("watch.telegram.enabled", false)
	v.SetDefault("watch.telegram.api_base", "https://api.telegram.org")

	v.SetDefault("export.max_data_points", 5000)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Decode.Window <= 0 {
		return fmt.Errorf("decode.window must be greater than zero")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be greater than zero")
	}
	if c.Watch.ThresholdPct < 0 {
		return fmt.Errorf("watch.threshold_pct cannot be negative")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	if c.Watch.Telegram.Enabled {
		if c.Watch.Telegram.BotToken == "" {
			return fmt.Errorf("watch.telegram.bot_token is required when telegram is enabled")
		}
		if c.Watch.Telegram.ChatID == "" {
			return fmt.Errorf("watch.telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

// DecodeOptions converts the decode section into core decoder options.
// Now stays zero here; callers anchor the window themselves.
func (c *Config) DecodeOptions() history.DecodeOptions {
	return history.DecodeOptions{
		RankCandidates:          slots(c.Decode.RankCandidates),
		CurrentPriceCandidates:  slots(c.Decode.CurrentPriceCandidates),
		WindowedPriceCandidates: slots(c.Decode.WindowedPriceCandidates),
		Window:                  c.Decode.Window,
	}
}

// SeriesIndexes returns the configured index-to-slot assignment, or nil
// when the config carries none (callers then fall back to the vendor's
// documented defaults).
func (c *Config) SeriesIndexes() map[history.Slot]int {
	if len(c.Decode.SeriesIndexes) == 0 {
		return nil
	}
	out := make(map[history.Slot]int, len(c.Decode.SeriesIndexes))
	for name, idx := range c.Decode.SeriesIndexes {
		out[history.Slot(name)] = idx
	}
	return out
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}

func slots(names []string) []history.Slot {
	out := make([]history.Slot, 0, len(names))
	for _, name := range names {
		out = append(out, history.Slot(name))
	}
	return out
}
