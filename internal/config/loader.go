package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration, applies environment overrides and validates.
// Search order: customPath -> ~/.wordle/config.yaml -> ./configs/wordle.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if p := userConfigPath("config.yaml"); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = Default()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/wordle.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = Default()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wordle", filename)
}

// applyEnv overrides cfg with any set environment variables.
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"PORT":             &cfg.Server.Port,
		"CLIENT_ORIGIN":    &cfg.Server.ClientOrigin,
		"JWT_SECRET":       &cfg.Server.JWTSecret,
		"SSH_ADDR":         &cfg.Server.SSHAddr,
		"DICTIONARY_MODE":  &cfg.Dictionary.Mode,
		"DICTIONARY_URL":   &cfg.Dictionary.URL,
		"STATS_DRIVER":     &cfg.Stats.Driver,
		"STATS_DB":         &cfg.Stats.DB,
		"REMOTE_STATS_URL": &cfg.Stats.RemoteURL,
		"DAILY_SALT":       &cfg.Daily.Salt,
	}
	for k, p := range strs {
		if v, ok := os.LookupEnv(k); ok && v != "" {
			*p = v
		}
	}

	ints := map[string]*int{
		"WORD_LENGTH":  &cfg.Game.WordLength,
		"MAX_ATTEMPTS": &cfg.Game.MaxAttempts,
	}
	for k, p := range ints {
		if v := os.Getenv(k); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", k, err)
			}
			*p = n
		}
	}

	if v := os.Getenv("REVEAL_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: REVEAL_DELAY: %w", err)
		}
		cfg.RevealDelay = d
	}
	return nil
}
