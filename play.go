package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
	"github.com/JonJui02/wordle-automated-deployment/internal/tui"
)

// localPlayer is the stats identity of terminal play on this machine.
const localPlayer = "local"

var flagDaily bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Play Wordle in your terminal.

Type letters to fill the row, Enter to submit, Backspace to delete.

Controls:
  ctrl+n  - New game
  ?       - Toggle help
  esc     - Quit

Stats are saved to the local database. When REMOTE_STATS_URL is set,
finished games are also sent to that server.

Examples:
  wordle play
  wordle play --daily
  wordle play --db ./stats.db`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDaily, "daily", false, "Play the word of the day")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns stdout; log to a file instead.
	if closeLog, err := logToFile(); err == nil {
		defer closeLog()
	} else {
		log.Logger = zerolog.Nop()
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var ledger game.Ledger = stats.PlayerLedger{Store: a.stats, Player: localPlayer}
	if url := cfg.Stats.RemoteURL; url != "" {
		tok, err := remoteToken(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str("url", url).Msg("remote stats disabled")
		} else {
			ledger = stats.Multi{Local: ledger, Remote: stats.NewRemote(url, tok, nil)}
		}
	}

	m, err := tui.New(tui.Options{
		Game:    a.gameOptions(ledger, flagDaily),
		Stats:   a.stats,
		Player:  localPlayer,
		Label:   a.label(flagDaily),
		Context: ctx,
	})
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// wordleDir returns ~/.wordle, creating it if needed.
func wordleDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".wordle")
	return dir, os.MkdirAll(dir, 0o755)
}

// logToFile points the global logger at ~/.wordle/wordle.log.
func logToFile() (func(), error) {
	dir, err := wordleDir()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "wordle.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

// remoteToken returns the cached player token for url, fetching (and
// caching) a fresh one from the server.
func remoteToken(ctx context.Context, url string) (string, error) {
	dir, err := wordleDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "remote_token")

	var previous string
	if b, err := os.ReadFile(path); err == nil {
		previous = strings.TrimSpace(string(b))
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tok, err := stats.FetchToken(ctx, url, previous, nil)
	if err != nil {
		if previous != "" {
			return previous, nil
		}
		return "", err
	}
	if err := os.WriteFile(path, []byte(tok+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("cache token: %w", err)
	}
	return tok, nil
}
