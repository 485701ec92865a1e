package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"riotscraper/pkg/auth"
	"riotscraper/pkg/config"
	errs "riotscraper/pkg/errors"
	"riotscraper/pkg/logger"
	"riotscraper/pkg/riot"
	"riotscraper/pkg/scraper"
	"riotscraper/pkg/sink"
	"riotscraper/pkg/ui"
)

var (
	// Scrape command flags
	outputDest   string
	appendMode   bool
	withTimeline bool
	sinkBackend  string
	redisAddr    string
	pageSize     int
	rateLimit    int
	apiKey       string
	profile      string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <region:player>",
	Short: "Download a player's full match history",
	Long: `Download every match in a player's history and append each one to the
configured sink.

The target is given as <region:player>, for example na1:Faker. When the region
prefix is omitted, the configured default region applies.

A Riot API key must be available through one of:
  - The --api-key flag
  - The RIOT_API_KEY environment variable
  - The system keychain (use 'riotscraper auth login' to store)

Records are written one at a time, each before the next match is fetched. An
interrupted run loses nothing that was already written: re-run with --append
against the same destination and only the missing matches are fetched.`,
	Example: `  # Scrape a player into Faker.jsonl
  riotscraper scrape na1:Faker

  # Resume an interrupted run
  riotscraper scrape na1:Faker --append

  # Include per-frame timelines and write to SQLite
  riotscraper scrape euw1:Caps --with-timeline --sink sqlite --output caps.db

  # Store records in Redis
  riotscraper scrape kr:Deft --sink redis --redis-addr localhost:6379`,
	Args: cobra.ExactArgs(1),
	Run:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&outputDest, "output", "o", "", "output destination (default: <player>.jsonl)")
	scrapeCmd.Flags().BoolVarP(&appendMode, "append", "a", false, "append to an existing destination, skipping stored matches")
	scrapeCmd.Flags().BoolVarP(&withTimeline, "with-timeline", "t", false, "also fetch the per-frame timeline for each match")
	scrapeCmd.Flags().StringVar(&sinkBackend, "sink", "", "sink backend: file, sqlite, or redis")
	scrapeCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis server address (redis backend only)")
	scrapeCmd.Flags().IntVar(&pageSize, "page-size", 0, "match IDs per listing page (max 100)")
	scrapeCmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "requests per second")
	scrapeCmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Riot API key (overrides environment and keychain)")
	scrapeCmd.Flags().StringVar(&profile, "profile", "", "stored API key profile to use")
}

// parseTarget splits a <region:player> argument. A bare player name keeps the
// configured default region.
func parseTarget(arg string) (region, player string, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", "", errors.New("player name is empty")
	}

	if idx := strings.Index(arg, ":"); idx >= 0 {
		region = strings.ToLower(strings.TrimSpace(arg[:idx]))
		player = strings.TrimSpace(arg[idx+1:])
		if region == "" || player == "" {
			return "", "", fmt.Errorf("malformed target %q, expected <region:player>", arg)
		}
		if !riot.IsValidPlatform(region) {
			return "", "", fmt.Errorf("unknown region %q", region)
		}
		return region, player, nil
	}
	return "", arg, nil
}

// defaultDestination picks a destination from the player name when none was
// configured. Redis destinations are key prefixes, not paths.
func defaultDestination(backend, player string) string {
	name := strings.ReplaceAll(player, " ", "_")
	switch backend {
	case config.BackendSQLite:
		return name + ".db"
	case config.BackendRedis:
		return "riotscraper:" + name
	default:
		return name + ".jsonl"
	}
}

func runScrape(cmd *cobra.Command, args []string) {
	region, player, err := parseTarget(args[0])
	if err != nil {
		ui.PrintError("Invalid target", err.Error())
		os.Exit(1)
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if region != "" {
		flags["region"] = region
	}
	if outputDest != "" {
		flags["output"] = outputDest
	}
	if cmd.Flags().Changed("append") {
		flags["append"] = appendMode
	}
	if cmd.Flags().Changed("with-timeline") {
		flags["with-timeline"] = withTimeline
	}
	if sinkBackend != "" {
		flags["sink"] = sinkBackend
	}
	if pageSize > 0 {
		flags["page-size"] = pageSize
	}
	if rateLimit > 0 {
		flags["rate-limit"] = rateLimit
	}
	if apiKey != "" {
		flags["api-key"] = apiKey
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}
	if redisAddr != "" {
		cfg.Output.RedisAddr = redisAddr
	}

	logger.Initialize(&cfg.Logging)
	logger.WithField("version", version).Info("Riot Scraper starting")

	// API key precedence: flag > environment/config > keychain
	if cfg.Riot.APIKey == "" {
		stored, err := auth.NewManager().Retrieve(profile)
		if err != nil {
			if errors.Is(err, auth.ErrKeyNotFound) {
				ui.PrintError("No Riot API key found", "")
				fmt.Println("\nTo store a key securely, run:")
				fmt.Println("  riotscraper auth login")
				fmt.Println("\nOr set it for this session:")
				fmt.Println("  export RIOT_API_KEY=RGAPI-...")
			} else {
				ui.PrintError("Failed to read API key", err.Error())
			}
			os.Exit(1)
		}
		cfg.Riot.APIKey = stored
	}

	if cfg.Output.Destination == "" {
		cfg.Output.Destination = defaultDestination(cfg.Output.Backend, player)
	}

	ui.PrintInfo("Target", args[0])
	ui.PrintInfo("Destination", fmt.Sprintf("%s (%s)", cfg.Output.Destination, cfg.Output.Backend))
	if cfg.Output.Append {
		ui.PrintInfo("Mode", "append, previously stored matches will be skipped")
	}

	snk, err := sink.New(cfg.Output.Backend, sink.Options{
		Destination: cfg.Output.Destination,
		Append:      cfg.Output.Append,
		RedisAddr:   cfg.Output.RedisAddr,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to open sink")
		ui.PrintError("Failed to open output destination", err.Error())
		os.Exit(1)
	}
	defer snk.Close()

	if preloaded := snk.Count(); preloaded > 0 {
		ui.PrintInfo("Already stored", fmt.Sprintf("%d matches", preloaded))
	}

	s, err := scraper.New(cfg, snk, logger.GetLogger())
	if err != nil {
		ui.PrintError("Failed to initialize scraper", err.Error())
		os.Exit(1)
	}

	result, err := s.Scrape(player)
	if err != nil {
		reportScrapeFailure(player, err)
		os.Exit(1)
	}

	logger.WithFields(map[string]interface{}{
		"player": player,
		"stored": result.Stored,
	}).Info("Scrape completed successfully")
	ui.PrintSuccess(fmt.Sprintf("Done: %d stored, %d skipped across %d pages",
		result.Stored, result.Skipped, result.Pages))
}

// reportScrapeFailure names the failing stage and identifier so an aborted run
// can be diagnosed and resumed.
func reportScrapeFailure(player string, err error) {
	log := logger.WithField("player", player).WithError(err)

	var fe *errs.FetchError
	var se *errs.StorageError
	switch {
	case errors.As(err, &fe):
		log.WithField("stage", string(fe.Stage)).Error("Scrape aborted by fetch failure")
	case errors.As(err, &se):
		log.WithField("destination", se.Destination).Error("Scrape aborted by storage failure")
	default:
		log.Error("Scrape aborted")
	}

	ui.PrintError("SCRAPE ABORTED", err.Error())
	fmt.Println("\nEverything fetched before the failure is already stored.")
	fmt.Println("Re-run with --append to resume from where this run stopped.")
}
