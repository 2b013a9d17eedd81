package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JonJui02/wordle-automated-deployment/internal/config"
	"github.com/JonJui02/wordle-automated-deployment/internal/daily"
	"github.com/JonJui02/wordle-automated-deployment/internal/dictionary"
	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
	"github.com/JonJui02/wordle-automated-deployment/internal/words"
)

// app holds the collaborators every command shares.
type app struct {
	cfg    config.Config
	words  *words.Lists
	oracle game.Oracle
	stats  *stats.SQLite
}

// newApp loads word lists, builds the oracle and opens the stats database.
func newApp(cfg config.Config) (*app, error) {
	if err := words.Init(cfg.Game.WordLength); err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	wl, err := words.Default()
	if err != nil {
		return nil, err
	}
	a, g := wl.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Int("length", wl.Length()).Msg("word lists loaded")

	oracle, err := dictionary.New(cfg.Dictionary.Mode, cfg.Dictionary.URL, wl)
	if err != nil {
		return nil, err
	}

	st, err := stats.Open(cfg.Stats.Driver, cfg.Stats.DB)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, words: wl, oracle: oracle, stats: st}, nil
}

func (a *app) Close() error { return a.stats.Close() }

// gameOptions returns session options; daily selects the word of the day.
func (a *app) gameOptions(ledger game.Ledger, isDaily bool) game.Options {
	opts := game.Options{
		Config: a.cfg.Game,
		Oracle: a.oracle,
		Ledger: ledger,
		Pick:   a.words.RandomAnswer,
	}
	if a.cfg.RevealDelay > 0 {
		opts.Pacer = game.Delay(a.cfg.RevealDelay)
	}
	if isDaily {
		opts.Pick = a.daily().Word
	}
	return opts
}

func (a *app) daily() daily.Picker {
	return daily.Picker{Answers: a.words.Answers(), Salt: a.cfg.Daily.Salt}
}

// label names the game mode for the terminal header.
func (a *app) label(isDaily bool) string {
	if isDaily {
		return "daily " + a.daily().Today()
	}
	return ""
}
