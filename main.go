// wordle is a Wordle game server and terminal client.
//
// Usage:
//
//	wordle serve           - HTTP + WebSocket API for browser clients
//	wordle play            - Play in this terminal
//	wordle ssh             - Serve the terminal game over SSH
//	wordle stats           - Show local stats and the leaderboard
//
// Global flags:
//
//	--config <path>  - YAML config file (default search: ~/.wordle/config.yaml, ./configs/wordle.yaml)
//	--db <path>      - Stats database path (overrides stats.db / STATS_DB)
//
// Environment is loaded from .env when present; LOG_LEVEL sets the log level.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/JonJui02/wordle-automated-deployment/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordle",
	Short: "Wordle - guess the hidden word in six tries",
	Long: `Wordle serves the game over HTTP and SSH, or plays it in your terminal.

Available commands:
  serve    - Start the HTTP/WebSocket API
  play     - Play in this terminal
  ssh      - Start an SSH server for remote terminal play
  stats    - Show your stats and the leaderboard

Examples:
  wordle serve
  wordle play --daily
  wordle ssh --addr :2222
  wordle stats --sort winrate`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to stats database")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig reads the config and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Stats.DB = flagDBPath
	}
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
