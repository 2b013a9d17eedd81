// internal/stats/sqlite.go
//
// SQLite-backed Store.
//   - Opens the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Transactions begin IMMEDIATE so concurrent Records queue on the busy
//     timeout instead of failing a read-to-write lock upgrade.
//   - Applies the embedded sql/*.sql migrations once, recorded in _migrations.
//   - Record runs the counter update and history insert in one transaction.
//
// Two drivers are supported: "sqlite3" (mattn/go-sqlite3, cgo) and "sqlite"
// (modernc.org/sqlite, pure Go).

package stats

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite is a Store backed by a SQLite file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and creates if missing) the database at path and migrates it.
// A leading "~" in path is expanded to the user's home directory.
func Open(driver, path string) (*SQLite, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("stats: expand home: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	// Ensure directory exists for ./data/stats.db, etc.
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("stats: mkdir %s: %w", dir, err)
		}
	}

	var dsn string
	switch driver {
	case "", DriverCGO:
		driver = DriverCGO
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&_txlock=immediate"
	case DriverPureGo:
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
	default:
		return nil, fmt.Errorf("stats: unknown driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("stats: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: ping: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// migrate applies embedded migrations in lexical order, each in its own
// transaction, skipping files already recorded in _migrations.
func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("stats: create _migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrations, "sql")
	if err != nil {
		return fmt.Errorf("stats: read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("stats: query _migrations: %w", err)
		}

		body, err := migrations.ReadFile("sql/" + f)
		if err != nil {
			return fmt.Errorf("stats: read %s: %w", f, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("stats: apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("stats: record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("stats: commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Record implements Store.
func (s *SQLite) Record(ctx context.Context, o Outcome) (Stats, error) {
	if o.Player == "" {
		return Stats{}, errors.New("stats: player is required")
	}
	at := o.At
	if at.IsZero() {
		at = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = tx.Rollback() }()

	st, err := scanStats(tx.QueryRowContext(ctx, `
		SELECT games_played, games_won, current_streak, max_streak
		FROM players WHERE player_id=?`, o.Player))
	if err != nil {
		return Stats{}, err
	}
	st.Apply(o.Won)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO players (player_id, games_played, games_won, current_streak, max_streak, win_rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			games_played=excluded.games_played,
			games_won=excluded.games_won,
			current_streak=excluded.current_streak,
			max_streak=excluded.max_streak,
			win_rate=excluded.win_rate,
			updated_at=excluded.updated_at`,
		o.Player, st.GamesPlayed, st.GamesWon, st.CurrentStreak, st.MaxStreak, st.WinRate(), at.UnixMilli(),
	); err != nil {
		return Stats{}, fmt.Errorf("stats: upsert player: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO game_history (player_id, target, won, attempts, played_at)
		VALUES (?, ?, ?, ?, ?)`,
		o.Player, o.Target, o.Won, o.Attempts, at.UnixMilli(),
	); err != nil {
		return Stats{}, fmt.Errorf("stats: insert history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("stats: commit: %w", err)
	}
	return st, nil
}

// scanStats reads one players row; a missing row yields zero Stats.
func scanStats(row *sql.Row) (Stats, error) {
	var st Stats
	err := row.Scan(&st.GamesPlayed, &st.GamesWon, &st.CurrentStreak, &st.MaxStreak)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("stats: load player: %w", err)
	}
	return st, nil
}

// Stats implements Store.
func (s *SQLite) Stats(ctx context.Context, player string) (Stats, error) {
	return scanStats(s.db.QueryRowContext(ctx, `
		SELECT games_played, games_won, current_streak, max_streak
		FROM players WHERE player_id=?`, player))
}

// History implements Store.
func (s *SQLite) History(ctx context.Context, player string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT target, won, attempts, played_at
		FROM game_history
		WHERE player_id=?
		ORDER BY played_at DESC, id DESC
		LIMIT ?`, player, limit)
	if err != nil {
		return nil, fmt.Errorf("stats: history: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e  Entry
			ms int64
		)
		if err := rows.Scan(&e.Target, &e.Won, &e.Attempts, &ms); err != nil {
			return nil, err
		}
		e.PlayedAt = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Leaderboard implements Store.
func (s *SQLite) Leaderboard(ctx context.Context, sortBy string, limit int) ([]Row, error) {
	sortBy, err := validSort(sortBy)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	order := "max_streak DESC, games_played DESC, player_id ASC"
	if sortBy == SortWinRate {
		order = "win_rate DESC, games_played DESC, player_id ASC"
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, games_played, games_won, current_streak, max_streak, win_rate
		FROM players
		WHERE games_played > 0
		ORDER BY `+order+`
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("stats: leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]Row, 0, limit)
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Player, &r.GamesPlayed, &r.GamesWon, &r.CurrentStreak, &r.MaxStreak, &r.WinRate); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Rank implements Store.
func (s *SQLite) Rank(ctx context.Context, player string) (int, error) {
	st, err := s.Stats(ctx, player)
	if err != nil {
		return 0, err
	}
	var above int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM players WHERE max_streak > ?`, st.MaxStreak,
	).Scan(&above); err != nil {
		return 0, fmt.Errorf("stats: rank: %w", err)
	}
	return above + 1, nil
}
