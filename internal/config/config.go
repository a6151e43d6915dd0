package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdem-server/internal/util"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded bool

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log" envconfig:"log"`

	// FrontendURL is the allowed CORS origin
	FrontendURL string `yaml:"frontendUrl" envconfig:"frontend_url"`

	Game Game `yaml:"game" envconfig:"game"`

	RateLimit struct {
		PerSecond float64 `yaml:"perSecond" envconfig:"per_second"`
		Burst     int     `yaml:"burst" envconfig:"burst"`
	} `yaml:"rateLimit" envconfig:"rate_limit"`
}

// Game holds the table settings applied to every room
type Game struct {
	StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
	SmallBlind    int `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind      int `yaml:"bigBlind" envconfig:"big_blind"`
	MaxPlayers    int `yaml:"maxPlayers" envconfig:"max_players"`
	// RestartDelay is in milliseconds
	RestartDelay int `yaml:"restartDelay" envconfig:"restart_delay"`
}

// RestartDelayDuration returns the restart delay as a time.Duration
func (g Game) RestartDelayDuration() time.Duration {
	return time.Duration(g.RestartDelay) * time.Millisecond
}

// DefaultConfig returns the configuration used when no file or environment overrides exist
func DefaultConfig() Config {
	cfg := Config{}
	cfg.Log.Level = "info"
	cfg.FrontendURL = "http://localhost:3000"
	cfg.Game = Game{
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		MaxPlayers:    8,
		RestartDelay:  1000,
	}
	cfg.RateLimit.PerSecond = 10
	cfg.RateLimit.Burst = 20

	return cfg
}

// Validate ensures the configuration can run a table
func (c Config) Validate() error {
	g := c.Game
	if g.StartingChips <= 0 {
		return errors.New("game.startingChips must be positive")
	}

	if g.BigBlind <= 0 || g.SmallBlind <= 0 {
		return errors.New("game blinds must be positive")
	}

	if g.SmallBlind > g.BigBlind {
		return fmt.Errorf("game.smallBlind (%d) cannot exceed game.bigBlind (%d)", g.SmallBlind, g.BigBlind)
	}

	if g.MaxPlayers < 2 {
		return fmt.Errorf("game.maxPlayers must be at least 2, got %d", g.MaxPlayers)
	}

	if g.RestartDelay < 0 {
		return errors.New("game.restartDelay cannot be negative")
	}

	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rateLimit values must be positive")
	}

	return nil
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional. Values not found in the file keep their defaults,
// then environment variables prefixed with HOLDEM_ are applied on top.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}
