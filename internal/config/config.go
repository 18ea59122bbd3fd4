// Package config provides configuration management for the journal application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"moodvibe/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Storage         StorageConfig   `mapstructure:"storage"`
	UI              UIConfig        `mapstructure:"ui"`
	Recommendations RecommendConfig `mapstructure:"recommendations"`
	Export          ExportConfig    `mapstructure:"export"`
	Logging         LoggingConfig   `mapstructure:"logging"`
	Sync            SyncConfig      `mapstructure:"sync"`
	Credentials     Credentials     `mapstructure:"-" json:"-"` // Loaded separately

	dir string
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// RecommendConfig holds recommendation provider settings.
type RecommendConfig struct {
	Live        bool          `mapstructure:"live"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RandomCount int           `mapstructure:"random_count"`
	SpotifyAuth string        `mapstructure:"spotify_auth_url"`
	SpotifyAPI  string        `mapstructure:"spotify_api_url"`
	TMDBURL     string        `mapstructure:"tmdb_url"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"` // text, csv, json
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"` // debug, info, warn, error
	File       bool   `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// SyncConfig holds cloud sync settings.
type SyncConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	UserID  string        `mapstructure:"user_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Credentials holds API credentials.
type Credentials struct {
	Spotify SpotifyCredentials `mapstructure:"spotify"`
	TMDB    TMDBCredentials    `mapstructure:"tmdb"`
	Sync    SyncCredentials    `mapstructure:"sync"`
}

// SpotifyCredentials holds Spotify client credentials.
type SpotifyCredentials struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// TMDBCredentials holds the TMDB API key.
type TMDBCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// SyncCredentials holds the sync endpoint key.
type SyncCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// envOverrides lists the environment variables that take precedence over
// the TOML files.
type envOverrides struct {
	DBPath              string `env:"MOODVIBE_DB_PATH"`
	LogLevel            string `env:"MOODVIBE_LOG_LEVEL"`
	Live                *bool  `env:"MOODVIBE_LIVE"`
	ExportDir           string `env:"MOODVIBE_EXPORT_DIR"`
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
	TMDBAPIKey          string `env:"TMDB_API_KEY"`
	SyncURL             string `env:"MOODVIBE_SYNC_URL"`
	SyncKey             string `env:"MOODVIBE_SYNC_KEY"`
	SyncUserID          string `env:"MOODVIBE_SYNC_USER"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/moodvibe"
	}
	return filepath.Join(home, ".config", "moodvibe")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. Missing files
// are created from templates on first run.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{dir: configDir}

	// Load main config
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.resolvePaths()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.db_path", "")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("recommendations.live", false)
	v.SetDefault("recommendations.timeout", "10s")
	v.SetDefault("recommendations.random_count", 3)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.format", "text")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 30)
	v.SetDefault("sync.enabled", false)
	v.SetDefault("sync.timeout", "10s")
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// Config file not found, create template and read it back
		if err := createTemplateConfig(configDir, name); err != nil {
			return err
		}
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		if err := createTemplateCredentials(configDir); err != nil {
			return err
		}
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return err
	}

	if o.DBPath != "" {
		cfg.Storage.DBPath = o.DBPath
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.Live != nil {
		cfg.Recommendations.Live = *o.Live
	}
	if o.ExportDir != "" {
		cfg.Export.Dir = o.ExportDir
	}

	// Provider credentials
	if o.SpotifyClientID != "" {
		cfg.Credentials.Spotify.ClientID = o.SpotifyClientID
	}
	if o.SpotifyClientSecret != "" {
		cfg.Credentials.Spotify.ClientSecret = o.SpotifyClientSecret
	}
	if o.TMDBAPIKey != "" {
		cfg.Credentials.TMDB.APIKey = o.TMDBAPIKey
	}

	// Sync endpoint
	if o.SyncURL != "" {
		cfg.Sync.URL = o.SyncURL
	}
	if o.SyncKey != "" {
		cfg.Credentials.Sync.APIKey = o.SyncKey
	}
	if o.SyncUserID != "" {
		cfg.Sync.UserID = o.SyncUserID
	}
	return nil
}

// resolvePaths fills in the database path under the config directory when
// none is configured.
func (c *Config) resolvePaths() {
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = filepath.Join(c.dir, "moodvibe.db")
	}
}

// Dir returns the directory the configuration was loaded from.
func (c *Config) Dir() string {
	return c.dir
}

// LogFilePath returns the rotating log file location.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.dir, "logs", "moodvibe.log")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level %q (must be debug, info, warn or error)", errors.ErrConfigInvalid, c.Logging.Level)
	}

	switch c.Export.Format {
	case "", "text", "csv", "json":
	default:
		return fmt.Errorf("%w: invalid export format %q (must be text, csv or json)", errors.ErrConfigInvalid, c.Export.Format)
	}

	if c.Recommendations.Timeout < 0 {
		return fmt.Errorf("%w: recommendations.timeout must be non-negative", errors.ErrConfigInvalid)
	}
	if c.Recommendations.RandomCount < 0 {
		return fmt.Errorf("%w: recommendations.random_count must be non-negative", errors.ErrConfigInvalid)
	}
	if c.Sync.Timeout < 0 {
		return fmt.Errorf("%w: sync.timeout must be non-negative", errors.ErrConfigInvalid)
	}

	if c.Sync.Enabled {
		if c.Sync.URL == "" {
			return fmt.Errorf("%w: sync.url is required when sync is enabled", errors.ErrConfigInvalid)
		}
		if !strings.HasPrefix(c.Sync.URL, "http://") && !strings.HasPrefix(c.Sync.URL, "https://") {
			return fmt.Errorf("%w: sync.url must be an http(s) URL", errors.ErrConfigInvalid)
		}
	}

	return nil
}

// HasSpotify reports whether Spotify credentials are configured.
func (c *Config) HasSpotify() bool {
	return c.Credentials.Spotify.ClientID != "" && c.Credentials.Spotify.ClientSecret != ""
}

// HasTMDB reports whether a TMDB key is configured.
func (c *Config) HasTMDB() bool {
	return c.Credentials.TMDB.APIKey != ""
}
