package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultAPIKeyFile is where the collector looks for the Riot API key when
// RIOT_API_KEY is not set
const DefaultAPIKeyFile = "API.in"

// Config holds all application configuration
type Config struct {
	// Riot API configuration
	RiotAPIKey     string
	RiotAPIKeyFile string

	// Database configuration
	DatabasePath string

	// Collection defaults
	Region          string
	Tier            string
	Division        string
	Page            int
	Pages           int
	RequestInterval time.Duration

	// Discord notification configuration (optional)
	DiscordToken     string
	DiscordChannelID string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		RiotAPIKeyFile: os.Getenv("RIOT_API_KEY_FILE"),
		DatabasePath:   os.Getenv("DATABASE_PATH"),

		// Collection defaults
		Region:          "NA",
		Tier:            "master",
		Division:        "",
		Page:            1,
		Pages:           1,
		RequestInterval: 1200 * time.Millisecond,

		// Discord notifications
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.RiotAPIKeyFile == "" {
		config.RiotAPIKeyFile = DefaultAPIKeyFile
	}

	// Override defaults if environment variables are set
	if region := os.Getenv("REGION"); region != "" {
		config.Region = strings.ToUpper(region)
	}
	if tier := os.Getenv("TIER"); tier != "" {
		config.Tier = tier
	}
	if division := os.Getenv("DIVISION"); division != "" {
		config.Division = division
	}
	if page := os.Getenv("PAGE"); page != "" {
		if parsed, err := strconv.Atoi(page); err == nil && parsed > 0 {
			config.Page = parsed
		}
	}
	if pages := os.Getenv("PAGES"); pages != "" {
		if parsed, err := strconv.Atoi(pages); err == nil && parsed > 0 {
			config.Pages = parsed
		}
	}
	if interval := os.Getenv("REQUEST_INTERVAL_MS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed >= 0 {
			config.RequestInterval = time.Duration(parsed) * time.Millisecond
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	key, err := resolveAPIKey(os.Getenv("RIOT_API_KEY"), config.RiotAPIKeyFile)
	if err != nil && config.Environment != "test" {
		return nil, err
	}
	config.RiotAPIKey = key

	return config, nil
}

// resolveAPIKey returns the API key from the environment, falling back to
// the first line of the key file
func resolveAPIKey(envKey, keyFile string) (string, error) {
	if envKey != "" {
		return strings.TrimSpace(envKey), nil
	}

	key, err := readAPIKeyFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("RIOT_API_KEY is not set and key file is unusable: %w", err)
	}
	return key, nil
}

// readAPIKeyFile reads the API key from the first line of a file
func readAPIKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	line, _, _ := strings.Cut(string(data), "\n")
	key := strings.TrimSpace(line)
	if key == "" {
		return "", fmt.Errorf("key file %s is empty", path)
	}
	return key, nil
}
