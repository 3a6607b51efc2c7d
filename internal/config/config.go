package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type CompletionConfig struct {
	Provider    string  `yaml:"provider"` // "openai" or "anthropic"
	Model       string  `yaml:"model,omitempty"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
	MaxTokens   int64   `yaml:"max_tokens,omitempty"`
}

type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	TTL     string `yaml:"ttl,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

type ResearchConfig struct {
	MaxResults int    `yaml:"max_results,omitempty"`
	DaysBack   int    `yaml:"days_back,omitempty"`
	NewsAPIKey string `yaml:"news_api_key,omitempty"`
	SerpAPIKey string `yaml:"serp_api_key,omitempty"`
}

type Config struct {
	Completion CompletionConfig `yaml:"completion"`
	Cache      CacheConfig      `yaml:"cache,omitempty"`
	Research   ResearchConfig   `yaml:"research,omitempty"`
}

// CompletionKey returns the resolved completion API key (config or env var).
func (c *Config) CompletionKey() string {
	if c.Completion.APIKey != "" {
		return c.Completion.APIKey
	}
	switch c.Completion.Provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// AIEnabled returns true if a completion API key is available.
func (c *Config) AIEnabled() bool {
	return c.CompletionKey() != ""
}

func (c *Config) NewsKey() string {
	if c.Research.NewsAPIKey != "" {
		return c.Research.NewsAPIKey
	}
	return os.Getenv("NEWS_API_KEY")
}

func (c *Config) SerpKey() string {
	if c.Research.SerpAPIKey != "" {
		return c.Research.SerpAPIKey
	}
	return os.Getenv("SERPAPI_KEY")
}

// CacheEnabled reports whether research results should be cached.
// Defaults to true when the config file does not say otherwise.
func (c *Config) CacheEnabled() bool {
	if c.Cache.Enabled == nil {
		return true
	}
	return *c.Cache.Enabled
}

// TTL returns the cache time-to-live, defaulting to 24h.
func (c *Config) TTL() time.Duration {
	if c.Cache.TTL == "" {
		return 24 * time.Hour
	}
	d, err := parseDurationDays(c.Cache.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetMaxResults returns the search result bound, defaulting to 10.
func (c *Config) GetMaxResults() int {
	if c.Research.MaxResults <= 0 {
		return 10
	}
	return c.Research.MaxResults
}

// GetDaysBack returns the news lookback window in days, defaulting to 30.
func (c *Config) GetDaysBack() int {
	if c.Research.DaysBack <= 0 {
		return 30
	}
	return c.Research.DaysBack
}

func (c *Config) GetTemperature() float64 {
	if c.Completion.Temperature <= 0 {
		return 0.7
	}
	return c.Completion.Temperature
}

func (c *Config) GetMaxTokens() int64 {
	if c.Completion.MaxTokens <= 0 {
		return 1000
	}
	return c.Completion.MaxTokens
}

// parseDurationDays parses a duration string, additionally supporting
// "Nd" day syntax.
func parseDurationDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "intelpost", "config.yaml")
}

// CachePath returns the cache database location, honoring the config override.
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(xdg.CacheHome, "intelpost", "research.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	switch cfg.Completion.Provider {
	case "", "openai", "anthropic":
	default:
		return fmt.Errorf("completion: unknown provider %q (valid: openai, anthropic)", cfg.Completion.Provider)
	}
	if cfg.Completion.Temperature < 0 || cfg.Completion.Temperature > 2 {
		return fmt.Errorf("completion: temperature must be between 0 and 2, got %g", cfg.Completion.Temperature)
	}
	if cfg.Completion.MaxTokens < 0 {
		return fmt.Errorf("completion: max_tokens must not be negative, got %d", cfg.Completion.MaxTokens)
	}
	if cfg.Cache.TTL != "" {
		if _, err := parseDurationDays(cfg.Cache.TTL); err != nil {
			return fmt.Errorf("cache: invalid ttl %q: %w", cfg.Cache.TTL, err)
		}
	}
	if cfg.Research.MaxResults < 0 {
		return fmt.Errorf("research: max_results must not be negative, got %d", cfg.Research.MaxResults)
	}
	if cfg.Research.DaysBack < 0 {
		return fmt.Errorf("research: days_back must not be negative, got %d", cfg.Research.DaysBack)
	}
	return nil
}
