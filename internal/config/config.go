// Package config loads wordle settings from YAML with environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
)

//go:embed defaults/wordle.yaml
var defaultYAML []byte

// Config is the full application configuration.
type Config struct {
	Game        game.Config   `yaml:"game"`
	RevealDelay time.Duration `yaml:"reveal_delay"` // per-row reveal animation; 0 disables
	Server      Server        `yaml:"server"`
	Dictionary  Dictionary    `yaml:"dictionary"`
	Stats       Stats         `yaml:"stats"`
	Daily       Daily         `yaml:"daily"`
}

// Server holds the HTTP and SSH front-end settings.
type Server struct {
	Port         string `yaml:"port"`
	ClientOrigin string `yaml:"client_origin"` // CORS allow-origin
	JWTSecret    string `yaml:"jwt_secret"`    // signs player tokens; generated when empty
	SSHAddr      string `yaml:"ssh_addr"`
}

// Dictionary selects the word oracle.
type Dictionary struct {
	Mode string `yaml:"mode"` // local | remote | cached
	URL  string `yaml:"url"`
}

// Stats selects the stats ledger backend.
type Stats struct {
	Driver    string `yaml:"driver"` // sqlite3 | sqlite
	DB        string `yaml:"db"`
	RemoteURL string `yaml:"remote_url"` // optional server to mirror outcomes to
}

// Daily configures the word-of-the-day picker.
type Daily struct {
	Salt string `yaml:"salt"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game:        game.DefaultConfig(),
		RevealDelay: 1500 * time.Millisecond,
		Server: Server{
			Port:         "8080",
			ClientOrigin: "http://localhost:5173",
			SSHAddr:      ":23234",
		},
		Dictionary: Dictionary{
			Mode: "local",
			URL:  "https://api.dictionaryapi.dev/api/v2/entries/en",
		},
		Stats: Stats{Driver: "sqlite3", DB: "~/.wordle/stats.db"},
		Daily: Daily{Salt: "wordle-daily"},
	}
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Game.WordLength < 2 {
		errs = append(errs, fmt.Errorf("config: word_length must be at least 2, got %d", c.Game.WordLength))
	}
	if c.Game.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("config: max_attempts must be at least 1, got %d", c.Game.MaxAttempts))
	}
	if c.RevealDelay < 0 {
		errs = append(errs, errors.New("config: reveal_delay must not be negative"))
	}
	return errors.Join(errs...)
}
