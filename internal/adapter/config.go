package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmcdole/pixgrid/internal/domain"
)

// SourceType identifies the image API backend
type SourceType string

const (
	SourceTypePixabay SourceType = "pixabay"
)

// apiKeyEnv is the variable the web client reads its key from
const apiKeyEnv = "PIXABAY_API_KEY"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BrowserConfig holds the external viewer used to open image pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // empty = system default
	Args    []string `mapstructure:"args"`
}

// APIConfig holds image API configuration
type APIConfig struct {
	Source     SourceType    `mapstructure:"source"`
	Key        string        `mapstructure:"key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	PerPage    int           `mapstructure:"per_page"`
	SafeSearch bool          `mapstructure:"safesearch"`
	ImageType  string        `mapstructure:"image_type"` // "all", "photo", "illustration", "vector"
	Order      string        `mapstructure:"order"`      // "popular" or "latest"
	UserAgent  string        `mapstructure:"user_agent"`
}

// SearchConfig holds search-as-you-type behaviour
type SearchConfig struct {
	Debounce        time.Duration `mapstructure:"debounce"`
	BottomTolerance int           `mapstructure:"bottom_tolerance"` // rows from the end that count as bottom
}

// UIConfig holds UI configuration
type UIConfig struct {
	MaxColumns int  `mapstructure:"max_columns"`
	ShowHelp   bool `mapstructure:"show_help"`
}

// CacheConfig holds the session page cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Source:     SourceTypePixabay,
			BaseURL:    "https://pixabay.com/api/",
			Timeout:    15 * time.Second,
			PerPage:    domain.DefaultPerPage,
			SafeSearch: domain.DefaultSafeSearch,
			UserAgent:  "pixgrid/1.0",
		},
		Search: SearchConfig{
			Debounce:        300 * time.Millisecond,
			BottomTolerance: 2,
		},
		UI: UIConfig{
			MaxColumns: 4,
			ShowHelp:   true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pixgrid", "pixgrid.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pixgrid", "pixgrid.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pixgrid")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "pixgrid")
	}
}

// setDefaults registers every default with v so env overrides work for
// keys that never appear in a config file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.source", string(cfg.API.Source))
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.per_page", cfg.API.PerPage)
	v.SetDefault("api.safesearch", cfg.API.SafeSearch)
	v.SetDefault("api.image_type", cfg.API.ImageType)
	v.SetDefault("api.order", cfg.API.Order)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("search.bottom_tolerance", cfg.Search.BottomTolerance)
	v.SetDefault("ui.max_columns", cfg.UI.MaxColumns)
	v.SetDefault("ui.show_help", cfg.UI.ShowHelp)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// NewViper returns a viper instance wired for pixgrid: config file lookup,
// PIXGRID_* environment overrides and defaults. configFile may be empty.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides: PIXGRID_API_KEY, PIXGRID_SEARCH_DEBOUNCE, ...
	v.SetEnvPrefix("PIXGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

// LoadConfig loads configuration from file, .env and environment
func LoadConfig(v *viper.Viper) (*Config, error) {
	// .env in the working directory; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.API.Key == "" {
		cfg.API.Key = os.Getenv(apiKeyEnv)
	}

	return cfg, nil
}

// Validate checks the settings needed to talk to the API
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return domain.ErrMissingAPIKey
	}
	if c.API.Source != SourceTypePixabay {
		return fmt.Errorf("unknown image source: %s", c.API.Source)
	}
	if c.API.PerPage < 3 || c.API.PerPage > 200 {
		return fmt.Errorf("api.per_page must be between 3 and 200, got %d", c.API.PerPage)
	}
	return nil
}

// IsConfigured returns true if an API key is available
func (c *Config) IsConfigured() bool {
	return c.API.Key != ""
}

// SearchDefaults returns the parameters every search starts from
func (c *Config) SearchDefaults() domain.SearchParams {
	return domain.SearchParams{
		PerPage:    c.API.PerPage,
		SafeSearch: c.API.SafeSearch,
		ImageType:  c.API.ImageType,
		Order:      c.API.Order,
	}
}

// SaveAPIKey stores the key in the user config file
func SaveAPIKey(v *viper.Viper, key string) (string, error) {
	v.Set("api.key", key)

	configFile := v.ConfigFileUsed()
	if configFile == "" {
		configPath := defaultConfigPath()
		if err := os.MkdirAll(configPath, 0755); err != nil {
			return "", fmt.Errorf("failed to create config directory: %w", err)
		}
		configFile = filepath.Join(configPath, "config.yaml")
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}
