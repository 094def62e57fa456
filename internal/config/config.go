package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/party-share/internal/domain/party"
)

// Storage backends for the saved party
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Party   PartyConfig
	Storage StorageConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Discord DiscordConfig
}

// PartyConfig holds the slot layout and the page address
type PartyConfig struct {
	CharacterSlots int    `env:"PARTY_CHARACTER_SLOTS" envDefault:"5"`
	RemnantSlots   int    `env:"PARTY_REMNANT_SLOTS" envDefault:"5"`
	BaseURL        string `env:"PARTY_BASE_URL" envDefault:"http://localhost:8080/"`
	// Language is a BCP 47 tag selecting how catalog names are ordered
	Language       string `env:"PARTY_LANGUAGE" envDefault:"ja"`
}

// StorageConfig selects where the party is saved between runs
type StorageConfig struct {
	Backend    string        `env:"PARTY_STORAGE" envDefault:"sqlite"`
	Key        string        `env:"PARTY_STORAGE_KEY" envDefault:"partyData"`
	SQLitePath string        `env:"PARTY_SQLITE_PATH" envDefault:"party.db"`
	TTL        time.Duration `env:"PARTY_STATE_TTL"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// CatalogConfig lists where the selectable items come from
type CatalogConfig struct {
	Files   []string      `env:"PARTY_CATALOG" envSeparator:","`
	URL     string        `env:"PARTY_CATALOG_URL"`
	Timeout time.Duration `env:"PARTY_CATALOG_TIMEOUT" envDefault:"10s"`
}

// DiscordConfig holds the optional webhook share links are posted to
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// Enabled reports whether a webhook is configured
func (c DiscordConfig) Enabled() bool {
	return c.WebhookID != "" && c.WebhookToken != ""
}

// Layout returns the slot layout
func (c *Config) Layout() party.Layout {
	return party.Layout{
		Characters: c.Party.CharacterSlots,
		Remnants:   c.Party.RemnantSlots,
	}
}

// Language returns the catalog collation language
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Party.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values the env parser cannot
func (c *Config) Validate() error {
	if err := c.Layout().Validate(); err != nil {
		return err
	}
	if _, err := language.Parse(c.Party.Language); err != nil {
		return fmt.Errorf("PARTY_LANGUAGE %q is not a language tag: %w", c.Party.Language, err)
	}
	if c.Party.BaseURL == "" {
		return fmt.Errorf("PARTY_BASE_URL is required")
	}

	switch c.Storage.Backend {
	case StorageMemory, StorageRedis:
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("PARTY_SQLITE_PATH is required for sqlite storage")
		}
	default:
		return fmt.Errorf("PARTY_STORAGE must be one of %s, %s or %s, got %q",
			StorageMemory, StorageRedis, StorageSQLite, c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("PARTY_STORAGE_KEY is required")
	}
	if c.Storage.TTL < 0 {
		return fmt.Errorf("PARTY_STATE_TTL must not be negative")
	}

	if (c.Discord.WebhookID == "") != (c.Discord.WebhookToken == "") {
		return fmt.Errorf("DISCORD_WEBHOOK_ID and DISCORD_WEBHOOK_TOKEN must be set together")
	}

	return nil
}
