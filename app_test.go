package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonJui02/wordle-automated-deployment/internal/config"
	"github.com/JonJui02/wordle-automated-deployment/internal/daily"
	"github.com/JonJui02/wordle-automated-deployment/internal/game"
)

func TestNewAppWiring(t *testing.T) {
	t.Setenv("WORDS_ANSWERS_FILE", "")
	t.Setenv("WORDS_ALLOWED_FILE", "")

	cfg := config.Default()
	cfg.Stats.Driver = "sqlite"
	cfg.Stats.DB = filepath.Join(t.TempDir(), "stats.db")
	cfg.RevealDelay = 0

	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp() failed: %v", err)
	}
	defer a.Close()

	opts := a.gameOptions(nil, true)
	if opts.Pacer != nil {
		t.Error("zero reveal delay should not install a pacer")
	}
	want := daily.Picker{Answers: a.words.Answers(), Salt: cfg.Daily.Salt}.Word()
	if got, day := a.label(true), daily.DateKey(time.Now()); got != "daily "+day {
		t.Errorf("label = %q, want daily %s", got, day)
	}
	if a.label(false) != "" {
		t.Error("random games should have no label")
	}
	s, err := game.NewSession("", opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range want {
		s.AddLetter(r)
	}
	out, err := s.SubmitGuess(context.Background())
	if err != nil {
		t.Fatalf("SubmitGuess(%q) failed: %v", want, err)
	}
	if !out.Won {
		t.Errorf("daily session did not use today's word %q", want)
	}

	cfg.RevealDelay = 1
	a.cfg = cfg
	if a.gameOptions(nil, false).Pacer == nil {
		t.Error("positive reveal delay should install a pacer")
	}
}

func TestLoadConfigDBFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	flagConfig, flagDBPath = "", "/tmp/custom.db"
	defer func() { flagDBPath = "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stats.DB != "/tmp/custom.db" {
		t.Errorf("Stats.DB = %q", cfg.Stats.DB)
	}
}
