package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"riotscraper/pkg/auth"
	"riotscraper/pkg/config"
	"riotscraper/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage Riot Scraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'riotscraper.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources.

The API key is shown in redacted form.`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = "riotscraper.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	exampleConfig := `# Riot Scraper Configuration File
#
# You can also use environment variables prefixed with RIOTSCRAPER_
# (plus RIOT_API_KEY for the key itself).

# Riot API access
riot:
  # API key from https://developer.riotgames.com
  # Prefer RIOT_API_KEY or 'riotscraper auth login' over storing it here
  api_key: ""

  # Default platform region (na1, euw1, kr, ...)
  region: "na1"

  # Development key limits: 20 requests per second, 100 per two minutes
  requests_per_second: 20
  requests_per_two_minutes: 100

  # Per-request timeout
  request_timeout: 30s

# Scrape behavior
scrape:
  # Match IDs requested per listing page (max 100)
  page_size: 100

  # Also fetch each match's per-frame timeline
  with_timeline: false

# Output sink
output:
  # Backend: file, sqlite, or redis
  backend: "file"

  # Destination: a file path for file and sqlite, a key prefix for redis.
  # Empty means <player>.jsonl in the working directory.
  destination: ""

  # Append to an existing destination and skip stored matches
  append: false

  # Redis server address (redis backend only)
  redis_addr: "localhost:6379"

# Retry policy for remote calls
retry:
  max_attempts: 3
  initial_delay: 1s
  max_delay: 30s
  multiplier: 2.0

# Logging
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional); empty logs to stderr only
  file: ""
`

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Run 'riotscraper auth login' to store your API key")
	fmt.Println("2. Run 'riotscraper config validate' to check the configuration")
	fmt.Println("3. Start scraping with 'riotscraper scrape <region:player>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Redact the key for display
	displayCfg := *cfg
	if displayCfg.Riot.APIKey != "" {
		displayCfg.Riot.APIKey = auth.Redact(displayCfg.Riot.APIKey)
	}

	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (RIOT_API_KEY, RIOTSCRAPER_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (not specified)")
	}
	fmt.Println("4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	if configFile == "" {
		possiblePaths := []string{
			"riotscraper.yaml",
			"riotscraper.yml",
			".riotscraper.yaml",
			".riotscraper.yml",
			filepath.Join(os.Getenv("HOME"), ".riotscraper.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "riotscraper", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	var warnings []string

	if cfg.Riot.APIKey == "" && os.Getenv("RIOT_API_KEY") == "" && !auth.NewManager().Exists(auth.DefaultProfile) {
		warnings = append(warnings, "no Riot API key configured; run 'riotscraper auth login'")
	}

	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			ui.PrintError("Configuration has errors:", "")
			fmt.Printf("  - cannot create log directory: %v\n", err)
			os.Exit(1)
		}
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Region: %s\n", cfg.Riot.Region)
	fmt.Printf("  Sink backend: %s\n", cfg.Output.Backend)
	fmt.Printf("  Page size: %d\n", cfg.Scrape.PageSize)
	fmt.Printf("  Rate limit: %d req/s, %d per two minutes\n",
		cfg.Riot.RequestsPerSecond, cfg.Riot.RequestsPerTwoMinutes)
	fmt.Printf("  Max retries: %d\n", cfg.Retry.MaxAttempts)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
