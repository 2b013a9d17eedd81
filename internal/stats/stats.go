// internal/stats/stats.go
//
// The stats ledger: per-player counters and game history.
//
// Counters follow the usual Wordle rules:
//   - every finished game bumps GamesPlayed
//   - a win bumps GamesWon and CurrentStreak; MaxStreak tracks the best run
//   - a loss resets CurrentStreak to 0
//
// Backends: SQLite (sqlite.go), in-memory (memory.go), and a remote HTTP
// ledger (remote.go). PlayerLedger and Multi adapt them to game.Ledger.

package stats

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrUnknownSort is returned by Leaderboard for an unsupported sort key.
var ErrUnknownSort = errors.New("stats: unknown leaderboard sort")

// Leaderboard sort keys.
const (
	SortStreak  = "streak"
	SortWinRate = "winrate"
)

// DefaultLeaderboardLimit applies when a non-positive limit is requested.
const DefaultLeaderboardLimit = 10

// Stats are one player's aggregate counters.
type Stats struct {
	GamesPlayed   int `json:"gamesPlayed"`
	GamesWon      int `json:"gamesWon"`
	CurrentStreak int `json:"currentStreak"`
	MaxStreak     int `json:"maxStreak"`
}

// Apply folds one finished game into s.
func (s *Stats) Apply(won bool) {
	s.GamesPlayed++
	if won {
		s.GamesWon++
		s.CurrentStreak++
		if s.CurrentStreak > s.MaxStreak {
			s.MaxStreak = s.CurrentStreak
		}
		return
	}
	s.CurrentStreak = 0
}

// WinRate returns the win percentage rounded to two decimals (0 when no games).
func (s Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return math.Round(float64(s.GamesWon)/float64(s.GamesPlayed)*10000) / 100
}

// Outcome is one finished game.
type Outcome struct {
	Player   string
	Won      bool
	Target   string
	Attempts int
	At       time.Time
}

// Entry is one game_history row.
type Entry struct {
	Target   string    `json:"target"`
	Won      bool      `json:"won"`
	Attempts int       `json:"attempts"`
	PlayedAt time.Time `json:"playedAt"`
}

// Row is one leaderboard line.
type Row struct {
	Player string `json:"player"`
	Stats
	WinRate float64 `json:"winRate"`
}

// Store persists outcomes and answers stats queries.
type Store interface {
	// Record applies o to the player's counters and appends it to history.
	Record(ctx context.Context, o Outcome) (Stats, error)
	// Stats returns the player's counters (zero value for unknown players).
	Stats(ctx context.Context, player string) (Stats, error)
	// History returns the player's most recent games, newest first.
	History(ctx context.Context, player string, limit int) ([]Entry, error)
	// Leaderboard returns the top players by sort key.
	Leaderboard(ctx context.Context, sort string, limit int) ([]Row, error)
	// Rank returns 1 + the number of players with a strictly greater max streak.
	Rank(ctx context.Context, player string) (int, error)
}

func validSort(sort string) (string, error) {
	switch sort {
	case "", SortStreak:
		return SortStreak, nil
	case SortWinRate:
		return SortWinRate, nil
	}
	return "", ErrUnknownSort
}
