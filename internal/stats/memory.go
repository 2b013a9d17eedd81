package stats

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Store. State is lost when the process exits.
type Memory struct {
	mu      sync.RWMutex
	players map[string]Stats
	history map[string][]Entry // oldest first
	now     func() time.Time
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		players: make(map[string]Stats),
		history: make(map[string][]Entry),
		now:     time.Now,
	}
}

// Record implements Store.
func (m *Memory) Record(_ context.Context, o Outcome) (Stats, error) {
	if o.Player == "" {
		return Stats{}, errors.New("stats: player is required")
	}
	at := o.At
	if at.IsZero() {
		at = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.players[o.Player]
	st.Apply(o.Won)
	m.players[o.Player] = st
	m.history[o.Player] = append(m.history[o.Player], Entry{
		Target:   o.Target,
		Won:      o.Won,
		Attempts: o.Attempts,
		PlayedAt: at.UTC(),
	})
	return st, nil
}

// Stats implements Store.
func (m *Memory) Stats(_ context.Context, player string) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.players[player], nil
}

// History implements Store.
func (m *Memory) History(_ context.Context, player string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	h := m.history[player]
	out := make([]Entry, 0, min(limit, len(h)))
	for i := len(h) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h[i])
	}
	return out, nil
}

// Leaderboard implements Store.
func (m *Memory) Leaderboard(_ context.Context, sortBy string, limit int) ([]Row, error) {
	sortBy, err := validSort(sortBy)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	m.mu.RLock()
	rows := make([]Row, 0, len(m.players))
	for p, st := range m.players {
		if st.GamesPlayed > 0 {
			rows = append(rows, Row{Player: p, Stats: st, WinRate: st.WinRate()})
		}
	}
	m.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if sortBy == SortWinRate && a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if sortBy == SortStreak && a.MaxStreak != b.MaxStreak {
			return a.MaxStreak > b.MaxStreak
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed > b.GamesPlayed
		}
		return a.Player < b.Player
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Rank implements Store.
func (m *Memory) Rank(_ context.Context, player string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mine := m.players[player].MaxStreak
	rank := 1
	for _, st := range m.players {
		if st.MaxStreak > mine {
			rank++
		}
	}
	return rank, nil
}
