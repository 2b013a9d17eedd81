package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/httpserver"
	"github.com/JonJui02/wordle-automated-deployment/internal/store"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP/WebSocket API",
	Long: `Start the HTTP API used by browser clients.

Endpoints include POST /session, POST /session/key, GET /session/ws,
GET /stats/me and GET /leaderboard.

Examples:
  wordle serve
  wordle serve --port 5175`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "Listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagPort != "" {
		cfg.Server.Port = flagPort
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := httpserver.Options{
		Config:   cfg,
		Words:    a.words,
		Oracle:   a.oracle,
		Stats:    a.stats,
		Sessions: store.NewMemoryStore(),
	}
	if cfg.RevealDelay > 0 {
		opts.Pacer = game.Delay(cfg.RevealDelay)
	}
	srv := httpserver.New(opts)

	log.Info().Str("port", cfg.Server.Port).Str("dictionary", cfg.Dictionary.Mode).Msg("starting wordle server")
	return srv.Start(":" + cfg.Server.Port)
}
