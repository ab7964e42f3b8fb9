// Package config loads the bot's process configuration from environment
// variables. Everything else is per-server and lives in the database.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the process-level settings.
type Config struct {
	// Token is the Discord bot token.
	Token string `env:"WARHORN_TOKEN,required"`
	// GuildID scopes slash-command registration to one server for
	// development. Empty registers commands globally.
	GuildID string `env:"WARHORN_GUILD_ID"`
	// DBPath is the sqlite database file location.
	DBPath string `env:"WARHORN_DB_PATH" envDefault:"warhorn.db"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
