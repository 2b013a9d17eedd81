// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Status: per-cell state (empty/filled) and per-letter score (correct/present/absent).
//   - Cell: one tile of the board.
//   - Config: board dimensions, fixed for the lifetime of a session.
//   - Oracle, Ledger, Pacer: the collaborators a Session consults.
//   - Outcome, Snapshot: what a submission returns and what a client renders.

package game

import "context"

// Status represents the state of a single tile or keyboard key.
// Possible values:
//   - "":        tile has no letter yet.
//   - "filled":  tile has a letter that has not been scored.
//   - "correct": letter is in the answer at this position.
//   - "present": letter is in the answer at a different position.
//   - "absent":  letter is not in the answer (or all its occurrences are used up).
type Status string

const (
	StatusEmpty   Status = ""
	StatusFilled  Status = "filled"
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// rank orders scored statuses: absent < present < correct.
// Unscored statuses rank 0.
func (s Status) rank() int {
	switch s {
	case StatusAbsent:
		return 1
	case StatusPresent:
		return 2
	case StatusCorrect:
		return 3
	}
	return 0
}

// Scored reports whether s is one of correct/present/absent.
func (s Status) Scored() bool { return s.rank() > 0 }

// Cell is a single board tile. Letter is lowercase a–z or empty.
type Cell struct {
	Letter string `json:"letter"`
	Status Status `json:"status"`
}

const (
	DefaultWordLength  = 5
	DefaultMaxAttempts = 6
)

// Config holds the board dimensions. Zero fields fall back to the defaults.
type Config struct {
	WordLength  int `yaml:"word_length" json:"wordLength"`
	MaxAttempts int `yaml:"max_attempts" json:"maxAttempts"`
}

// DefaultConfig returns the classic 6x5 board.
func DefaultConfig() Config {
	return Config{WordLength: DefaultWordLength, MaxAttempts: DefaultMaxAttempts}
}

func (c Config) withDefaults() Config {
	if c.WordLength <= 0 {
		c.WordLength = DefaultWordLength
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}

// Oracle answers whether a word is an acceptable guess.
// Implementations may be slow (network) and may fail.
type Oracle interface {
	IsValidWord(ctx context.Context, word string) (bool, error)
}

// Ledger records finished games. The session never inspects the result
// beyond logging a failure.
type Ledger interface {
	RecordOutcome(ctx context.Context, won bool, target string, attempts int) error
}

// Pacer lets the presentation layer hold a scored row before the turn is
// finalized (e.g. while tiles flip). The submission lock is held throughout.
type Pacer interface {
	Reveal(ctx context.Context, row int, statuses []Status) error
}

// Outcome is the result of an accepted guess.
type Outcome struct {
	Guess    string   `json:"guess"`
	Row      int      `json:"row"`
	Statuses []Status `json:"statuses"`
	Won      bool     `json:"won"`
	Over     bool     `json:"over"`
}

// Snapshot is a copy of everything needed to render a session.
type Snapshot struct {
	ID          string            `json:"id"`
	WordLength  int               `json:"wordLength"`
	MaxAttempts int               `json:"maxAttempts"`
	Board       [][]Cell          `json:"board"`
	Keys        map[string]Status `json:"keys"`
	Row         int               `json:"row"`
	Column      int               `json:"column"`
	Over        bool              `json:"over"`
	Won         bool              `json:"won"`
	Submitting  bool              `json:"submitting"`
	Message     string            `json:"message,omitempty"`
	Answer      string            `json:"answer,omitempty"` // only once the game is over
}
