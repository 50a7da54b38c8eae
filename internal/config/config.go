package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic  AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Scrape     ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Batch      BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server     ServerConfig    `yaml:"server" mapstructure:"server"`
	VoiceCalls VoiceCallConfig `yaml:"voice_calls" mapstructure:"voice_calls"`
	Refresh    RefreshConfig   `yaml:"refresh" mapstructure:"refresh"`
	Log        LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings for the topic classifier. An
// empty key switches the classifier to its deterministic keyword fallback.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	Model       string `yaml:"model" mapstructure:"model"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ScrapeConfig configures page fetching for both extractors.
type ScrapeConfig struct {
	// Strategy selects the website page strategy: "static" or "rendered".
	Strategy          string  `yaml:"strategy" mapstructure:"strategy"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RenderTimeoutSecs int     `yaml:"render_timeout_secs" mapstructure:"render_timeout_secs"`
	RatePerSec        float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentCompanies int `yaml:"max_concurrent_companies" mapstructure:"max_concurrent_companies"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// VoiceCallConfig configures voice-call link issuing.
type VoiceCallConfig struct {
	DefaultExpiryMinutes int `yaml:"default_expiry_minutes" mapstructure:"default_expiry_minutes"`
	SweepIntervalSecs    int `yaml:"sweep_interval_secs" mapstructure:"sweep_interval_secs"`
}

// RefreshConfig configures the scheduled stale-profile refresh job.
type RefreshConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	Cron       string `yaml:"cron" mapstructure:"cron"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Limit      int    `yaml:"limit" mapstructure:"limit"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REGRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Defaults returns the default configuration values keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"store.driver":                       "sqlite",
		"store.database_url":                 "compliance.db",
		"anthropic.key":                      "",
		"anthropic.model":                    "claude-haiku-4-5-20251001",
		"anthropic.timeout_secs":             30,
		"scrape.strategy":                    "static",
		"scrape.timeout_secs":                30,
		"scrape.render_timeout_secs":         60,
		"scrape.rate_per_sec":                2.0,
		"batch.max_concurrent_companies":     5,
		"server.port":                        8080,
		"voice_calls.default_expiry_minutes": 60,
		"voice_calls.sweep_interval_secs":    300,
		"refresh.enabled":                    false,
		"refresh.cron":                       "20 4 * * 1",
		"refresh.max_age_days":               30,
		"refresh.limit":                      50,
		"log.level":                          "info",
		"log.format":                         "json",
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
