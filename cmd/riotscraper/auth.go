package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"riotscraper/pkg/auth"
	"riotscraper/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Riot API keys",
	Long: `Manage stored Riot API keys securely.

Keys are stored in the system keychain under a profile name, so a development
key and a production key can live side by side. The RIOT_API_KEY environment
variable always takes precedence over stored keys.

Never share your API key or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [profile]",
	Short: "Store a Riot API key securely",
	Long: `Store a Riot API key in the system keychain.

You will be prompted for the key; input is hidden as you type. Get a key from
https://developer.riotgames.com (development keys expire every 24 hours).`,
	Example: `  # Store the default key
  riotscraper auth login

  # Store a key under a named profile
  riotscraper auth login production`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout [profile]",
	Short: "Remove a stored API key",
	Args:  cobra.MaximumNArgs(1),
	Run:   runLogout,
}

// showCmd represents the auth show command
var showCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show a stored API key in redacted form",
	Args:  cobra.MaximumNArgs(1),
	Run:   runShow,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(showCmd)
}

func profileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return auth.DefaultProfile
}

func runLogin(cmd *cobra.Command, args []string) {
	manager := auth.NewManager()
	profile := profileArg(args)

	if manager.Exists(profile) {
		reader := bufio.NewReader(os.Stdin)
		fmt.Printf("A key is already stored for profile '%s'. Replace it? (y/N): ", profile)
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
	}

	fmt.Print("Riot API key (input hidden): ")
	key, err := readSecret()
	if err != nil {
		ui.PrintError("Failed to read API key", err.Error())
		os.Exit(1)
	}
	key = strings.TrimSpace(key)

	if key == "" {
		ui.PrintError("API key is required", "")
		os.Exit(1)
	}
	if !strings.HasPrefix(key, "RGAPI-") {
		ui.PrintWarning("Key does not start with RGAPI-, storing anyway")
	}

	if err := manager.Store(profile, key); err != nil {
		ui.PrintError("Failed to store API key", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess(fmt.Sprintf("API key stored for profile '%s'", profile))
	fmt.Println("\nStart scraping with:")
	fmt.Println("  riotscraper scrape <region:player>")
}

func runLogout(cmd *cobra.Command, args []string) {
	profile := profileArg(args)

	if err := auth.NewManager().Delete(profile); err != nil {
		ui.PrintError("Failed to remove API key", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess(fmt.Sprintf("API key removed for profile '%s'", profile))
}

func runShow(cmd *cobra.Command, args []string) {
	profile := profileArg(args)

	key, err := auth.NewManager().Retrieve(profile)
	if err != nil {
		ui.PrintError("No API key found", err.Error())
		os.Exit(1)
	}

	ui.PrintInfo("Profile", profile)
	ui.PrintInfo("API key", auth.Redact(key))
	if os.Getenv("RIOT_API_KEY") != "" {
		ui.PrintInfo("Source", "RIOT_API_KEY environment variable")
	} else {
		ui.PrintInfo("Source", "system keychain")
	}
}

// readSecret reads a secret from stdin without echoing
func readSecret() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err == nil {
			return string(secret), nil
		}
	}

	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
