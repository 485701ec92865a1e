package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sink backend names accepted by Output.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all configuration options for the match scraper
type Config struct {
	// Riot API access
	Riot RiotConfig `yaml:"riot" json:"riot"`

	// Scrape behavior
	Scrape ScrapeConfig `yaml:"scrape" json:"scrape"`

	// Output sink settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Retry policy for remote calls
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// RiotConfig holds Riot API specific configuration
type RiotConfig struct {
	APIKey string `yaml:"api_key" json:"api_key"`
	Region string `yaml:"region" json:"region"`

	// Development keys allow 20 requests per second and 100 per two minutes.
	RequestsPerSecond     int `yaml:"requests_per_second" json:"requests_per_second"`
	RequestsPerTwoMinutes int `yaml:"requests_per_two_minutes" json:"requests_per_two_minutes"`

	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// ScrapeConfig holds scrape loop configuration
type ScrapeConfig struct {
	// PageSize is the number of match IDs requested per listing page (Riot caps this at 100)
	PageSize     int  `yaml:"page_size" json:"page_size"`
	WithTimeline bool `yaml:"with_timeline" json:"with_timeline"`
}

// OutputConfig holds record sink configuration
type OutputConfig struct {
	// Destination is backend specific: a file path for file and sqlite, a key
	// prefix for redis. Empty means <player>.jsonl next to the working directory.
	Destination string `yaml:"destination" json:"destination"`
	Append      bool   `yaml:"append" json:"append"`
	Backend     string `yaml:"backend" json:"backend"`
	RedisAddr   string `yaml:"redis_addr" json:"redis_addr"`
}

// RetryConfig holds retry policy for remote calls
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" json:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay" json:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay" json:"max_delay"`
	Multiplier   float64       `yaml:"multiplier" json:"multiplier"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Riot: RiotConfig{
			Region:                "na1",
			RequestsPerSecond:     20,
			RequestsPerTwoMinutes: 100,
			RequestTimeout:        30 * time.Second,
		},
		Scrape: ScrapeConfig{
			PageSize:     100,
			WithTimeline: false,
		},
		Output: OutputConfig{
			Destination: "",
			Append:      false,
			Backend:     BackendFile,
			RedisAddr:   "localhost:6379",
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if apiKey := os.Getenv("RIOT_API_KEY"); apiKey != "" {
		c.Riot.APIKey = apiKey
	}
	if region := os.Getenv("RIOTSCRAPER_REGION"); region != "" {
		c.Riot.Region = region
	}
	if rps := os.Getenv("RIOTSCRAPER_REQUESTS_PER_SECOND"); rps != "" {
		if val, err := strconv.Atoi(rps); err == nil && val > 0 {
			c.Riot.RequestsPerSecond = val
		}
	}
	if pageSize := os.Getenv("RIOTSCRAPER_PAGE_SIZE"); pageSize != "" {
		if val, err := strconv.Atoi(pageSize); err == nil && val > 0 {
			c.Scrape.PageSize = val
		}
	}
	if timeline := os.Getenv("RIOTSCRAPER_WITH_TIMELINE"); timeline != "" {
		c.Scrape.WithTimeline = strings.ToLower(timeline) == "true"
	}
	if dest := os.Getenv("RIOTSCRAPER_OUTPUT"); dest != "" {
		c.Output.Destination = dest
	}
	if backend := os.Getenv("RIOTSCRAPER_SINK"); backend != "" {
		c.Output.Backend = backend
	}
	if addr := os.Getenv("RIOTSCRAPER_REDIS_ADDR"); addr != "" {
		c.Output.RedisAddr = addr
	}
	if logLevel := os.Getenv("RIOTSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".riotscraper.yaml",
		".riotscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "riotscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "riotscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".riotscraper.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Riot.Region == "" {
		errs = append(errs, errors.New("region is required"))
	}
	if c.Riot.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("requests per second must be positive"))
	}
	if c.Riot.RequestsPerTwoMinutes <= 0 {
		errs = append(errs, errors.New("requests per two minutes must be positive"))
	}
	if c.Riot.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Scrape.PageSize <= 0 || c.Scrape.PageSize > 100 {
		errs = append(errs, errors.New("page size must be between 1 and 100"))
	}

	switch c.Output.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown sink backend %q", c.Output.Backend))
	}
	if c.Output.Backend == BackendRedis && c.Output.RedisAddr == "" {
		errs = append(errs, errors.New("redis address is required for the redis backend"))
	}

	if c.Retry.MaxAttempts < 0 {
		errs = append(errs, errors.New("max retry attempts cannot be negative"))
	}
	if c.Retry.Multiplier < 1.0 {
		errs = append(errs, errors.New("retry multiplier must be at least 1"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		c.Riot.APIKey = apiKey
	}
	if region, ok := flags["region"].(string); ok && region != "" {
		c.Riot.Region = region
	}
	if dest, ok := flags["output"].(string); ok && dest != "" {
		c.Output.Destination = dest
	}
	if appendMode, ok := flags["append"].(bool); ok {
		c.Output.Append = appendMode
	}
	if backend, ok := flags["sink"].(string); ok && backend != "" {
		c.Output.Backend = backend
	}
	if withTimeline, ok := flags["with-timeline"].(bool); ok {
		c.Scrape.WithTimeline = withTimeline
	}
	if pageSize, ok := flags["page-size"].(int); ok && pageSize > 0 {
		c.Scrape.PageSize = pageSize
	}
	if rps, ok := flags["rate-limit"].(int); ok && rps > 0 {
		c.Riot.RequestsPerSecond = rps
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".riotscraper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
