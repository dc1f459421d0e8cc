// Package config handles configuration loading for the news advisor.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Feeds     FeedsConfig     `mapstructure:"feeds"     yaml:"feeds"`
	Market    MarketConfig    `mapstructure:"market"    yaml:"market"`
	Recommend RecommendConfig `mapstructure:"recommend" yaml:"recommend"`
	Telegram  TelegramConfig  `mapstructure:"telegram"  yaml:"telegram"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// FeedsConfig holds RSS ingestion settings.
type FeedsConfig struct {
	Sources       []FeedSource `mapstructure:"sources"        yaml:"sources"`
	HeadlineLimit int          `mapstructure:"headline_limit" yaml:"headline_limit"`
}

// FeedSource is one configured RSS feed.
type FeedSource struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// MarketConfig holds market-data settings.
type MarketConfig struct {
	SymbolsCSV string `mapstructure:"symbols_csv" yaml:"symbols_csv"` // nifty500-style stock list; empty uses the built-in map
	WindowDays int    `mapstructure:"window_days" yaml:"window_days"` // performance lookback
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	BuyThreshold   float64 `mapstructure:"buy_threshold"   yaml:"buy_threshold"`   // avg daily return, e.g. 0.001
	AvoidThreshold float64 `mapstructure:"avoid_threshold" yaml:"avoid_threshold"` // e.g. -0.001
	TopN           int     `mapstructure:"top_n"           yaml:"top_n"`
}

// TelegramConfig holds outbound alert credentials.
type TelegramConfig struct {
	Token  string `mapstructure:"token"   yaml:"token"`
	ChatID int64  `mapstructure:"chat_id" yaml:"chat_id"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.newsadvisor/config.yaml (home directory)
//  3. /etc/newsadvisor/config.yaml (system)
//
// Environment variables override config file values.
// Format: NEWSADVISOR_<SECTION>_<KEY>, e.g., NEWSADVISOR_TELEGRAM_TOKEN
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".newsadvisor"))
	v.AddConfigPath("/etc/newsadvisor")

	v.SetEnvPrefix("NEWSADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("NEWSADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Feed defaults
	v.SetDefault("feeds.headline_limit", 15)

	// Market defaults
	v.SetDefault("market.window_days", 182) // ~six months

	// Recommendation defaults: ±0.1% average daily return
	v.SetDefault("recommend.buy_threshold", 0.001)
	v.SetDefault("recommend.avoid_threshold", -0.001)
	v.SetDefault("recommend.top_n", 3)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if token := os.Getenv("NEWSADVISOR_TELEGRAM_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if id := os.Getenv("NEWSADVISOR_TELEGRAM_CHAT_ID"); id != "" {
		var chatID int64
		if _, err := fmt.Sscanf(id, "%d", &chatID); err == nil {
			cfg.Telegram.ChatID = chatID
		}
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
