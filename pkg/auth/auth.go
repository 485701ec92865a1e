// Package auth stores the Riot API key in the system keychain.
//
// Keys are held per profile name (default "default") so multiple keys can be
// stored side by side. The RIOT_API_KEY environment variable always takes
// precedence over stored keys, which keeps CI and one-off usage simple.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "riotscraper"
	keyringPrefix  = "riot_api_key_"

	// DefaultProfile is the profile used when none is named
	DefaultProfile = "default"
)

var (
	// ErrKeyNotFound is returned when no API key is stored for a profile
	ErrKeyNotFound = errors.New("no API key stored")
	// ErrInvalidKey is returned for empty or malformed API keys
	ErrInvalidKey = errors.New("invalid API key")
)

// Manager handles API key storage and retrieval
type Manager struct{}

// NewManager creates a new credential manager
func NewManager() *Manager {
	return &Manager{}
}

// Store saves an API key under the given profile name
func (m *Manager) Store(profile, apiKey string) error {
	if profile == "" {
		profile = DefaultProfile
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ErrInvalidKey
	}

	if err := keyring.Set(keyringService, keyringPrefix+profile, apiKey); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// Retrieve returns the API key for the given profile. The RIOT_API_KEY
// environment variable, when set, wins over the keyring.
func (m *Manager) Retrieve(profile string) (string, error) {
	if envKey := os.Getenv("RIOT_API_KEY"); envKey != "" {
		return envKey, nil
	}

	if profile == "" {
		profile = DefaultProfile
	}

	apiKey, err := keyring.Get(keyringService, keyringPrefix+profile)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read API key from keyring: %w", err)
	}
	return apiKey, nil
}

// Delete removes the API key stored under the given profile
func (m *Manager) Delete(profile string) error {
	if profile == "" {
		profile = DefaultProfile
	}

	if err := keyring.Delete(keyringService, keyringPrefix+profile); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	return nil
}

// Exists reports whether an API key is stored for the given profile
func (m *Manager) Exists(profile string) bool {
	if profile == "" {
		profile = DefaultProfile
	}
	_, err := keyring.Get(keyringService, keyringPrefix+profile)
	return err == nil
}

// Redact returns a display-safe form of an API key for logs and prompts
func Redact(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + strings.Repeat("*", 4)
}
