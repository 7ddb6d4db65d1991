// Package config loads host configuration: where the database lives, who
// the acting user is, and display preferences. The core computation
// packages take all of this as parameters and never read config
// themselves.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the host-level settings.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string `mapstructure:"db_path"`

	// Actor is the name recorded on audit events.
	Actor string `mapstructure:"actor"`

	// HighlightUrgent toggles row highlighting in list views.
	HighlightUrgent bool `mapstructure:"highlight_urgent"`

	// Timezone resolves "today" for derived scheduling state.
	Timezone string `mapstructure:"timezone"`

	// TeamCodesPath optionally overrides the built-in team-to-department
	// code table (YAML map of team name to code).
	TeamCodesPath string `mapstructure:"team_codes"`
}

// Load reads configuration from wbs.yaml (current directory or
// ~/.config/wbs), with WBS_* environment variable overrides. A missing
// config file is fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("wbs")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "wbs"))
	}

	v.SetDefault("db_path", ".wbs/tasks.db")
	v.SetDefault("actor", defaultActor())
	v.SetDefault("highlight_urgent", true)
	v.SetDefault("timezone", "Local")

	v.SetEnvPrefix("WBS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "user"
}
