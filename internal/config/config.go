package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Storage backends understood by STORAGE_TYPE
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development" or "production"
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage
	DataDir       string `env:"DATA_DIR" envDefault:"./data"`
	StorageType   string `env:"STORAGE_TYPE" envDefault:"file"`
	SQLitePath    string `env:"SQLITE_PATH"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	RedisURL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"tong777"`

	// Round archive, disabled when the URL is empty
	ElasticsearchURL         string `env:"ELASTICSEARCH_URL"`
	ElasticsearchUsername    string `env:"ELASTICSEARCH_USERNAME"`
	ElasticsearchPassword    string `env:"ELASTICSEARCH_PASSWORD"`
	ElasticsearchIndexPrefix string `env:"ELASTICSEARCH_INDEX_PREFIX" envDefault:"tong777"`

	// Accounts
	StartingBalance string `env:"STARTING_BALANCE" envDefault:"100.00"`
	HistoryLimit    int    `env:"HISTORY_LIMIT" envDefault:"100"`

	// Randomness; 0 seeds from crypto/rand
	RNGSeed uint64 `env:"RNG_SEED" envDefault:"0"`

	// Slots
	SlotsWeighted          bool    `env:"SLOTS_WEIGHTED" envDefault:"true"`
	SlotsSpecialWeight     float64 `env:"SLOTS_SPECIAL_WEIGHT" envDefault:"5"`
	SlotsJackpotMultiplier int64   `env:"SLOTS_JACKPOT_MULTIPLIER" envDefault:"100"`
	SlotsLargeMultiplier   int64   `env:"SLOTS_LARGE_MULTIPLIER" envDefault:"25"`
	SlotsSmallMultiplier   int64   `env:"SLOTS_SMALL_MULTIPLIER" envDefault:"5"`
	SlotsMatchMultiplier   int64   `env:"SLOTS_MATCH_MULTIPLIER" envDefault:"2"`

	// Blackjack
	BlackjackNaturalPayout  string `env:"BLACKJACK_NATURAL_PAYOUT" envDefault:"1.5"`
	BlackjackDealerStandsOn int    `env:"BLACKJACK_DEALER_STANDS_ON" envDefault:"17"`

	startingBalance decimal.Decimal
	naturalPayout   decimal.Decimal
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "tong777.db")
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the configuration and caches the parsed money values
func (c *Config) validate() error {
	switch c.StorageType {
	case StorageFile, StorageSQLite, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_TYPE must be one of file, sqlite, redis, memory; got %q", c.StorageType)
	}

	balance, err := decimal.NewFromString(c.StartingBalance)
	if err != nil {
		return fmt.Errorf("STARTING_BALANCE is not a number: %w", err)
	}
	if balance.IsNegative() {
		return fmt.Errorf("STARTING_BALANCE must not be negative")
	}
	c.startingBalance = balance.Round(2)

	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive")
	}

	if c.SlotsSpecialWeight < 0 || c.SlotsSpecialWeight > 100 {
		return fmt.Errorf("SLOTS_SPECIAL_WEIGHT must be between 0 and 100")
	}
	for name, m := range map[string]int64{
		"SLOTS_JACKPOT_MULTIPLIER": c.SlotsJackpotMultiplier,
		"SLOTS_LARGE_MULTIPLIER":   c.SlotsLargeMultiplier,
		"SLOTS_SMALL_MULTIPLIER":   c.SlotsSmallMultiplier,
		"SLOTS_MATCH_MULTIPLIER":   c.SlotsMatchMultiplier,
	} {
		if m < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	payout, err := decimal.NewFromString(c.BlackjackNaturalPayout)
	if err != nil {
		return fmt.Errorf("BLACKJACK_NATURAL_PAYOUT is not a number: %w", err)
	}
	if payout.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("BLACKJACK_NATURAL_PAYOUT must be at least 1")
	}
	c.naturalPayout = payout

	if c.BlackjackDealerStandsOn < 2 || c.BlackjackDealerStandsOn > 21 {
		return fmt.Errorf("BLACKJACK_DEALER_STANDS_ON must be between 2 and 21")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// StartingBalanceAmount returns the new-account balance as money
func (c *Config) StartingBalanceAmount() decimal.Decimal {
	return c.startingBalance
}

// NaturalPayout returns the blackjack natural multiplier
func (c *Config) NaturalPayout() decimal.Decimal {
	return c.naturalPayout
}

// PlayersDir is where the file store keeps one JSON document per player
func (c *Config) PlayersDir() string {
	return filepath.Join(c.DataDir, "players")
}

// ArchiveEnabled reports whether finished rounds go to Elasticsearch
func (c *Config) ArchiveEnabled() bool {
	return c.ElasticsearchURL != ""
}
