// internal/game/session.go
//
// Session is the state machine for one player's game.
// Responsibilities:
//   - Own the target, board, cursor (row/column), key statuses and over flag.
//   - Letter entry and deletion with a left-to-right stack discipline.
//   - Guess submission: oracle check, scoring, key promotion, reveal, turn advance.
//   - The submission lock: at most one guess is validated/scored at a time.
//
// Concurrency:
//   - All fields are guarded by mu. mu is never held across the oracle call or
//     the pacer, so typing stays live while a guess is in flight.
//   - Reset bumps gen and cancels the in-flight oracle call; a submission that
//     resumes under an old gen drops its result.

package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// recordTimeout bounds a single ledger write.
const recordTimeout = 10 * time.Second

// Options wires a session to its collaborators.
type Options struct {
	Config Config
	Oracle Oracle        // required
	Ledger Ledger        // optional; finished games are dropped when nil
	Pacer  Pacer         // optional; no reveal delay when nil
	Pick   func() string // chooses a target when none is given
}

// Session holds the state of a single game. Create with NewSession.
type Session struct {
	mu sync.Mutex

	id      string
	cfg     Config
	target  string
	board   [][]Cell
	row     int
	col     int
	over    bool
	won     bool
	guesses []string
	keys    KeyStatusMap
	message string

	submitting bool               // the submission lock
	revealing  bool               // current row is scored, turn not yet finalized
	gen        uint64             // bumped on every Reset
	cancel     context.CancelFunc // cancels the in-flight oracle call

	oracle Oracle
	ledger Ledger
	pacer  Pacer
	pick   func() string
}

// NewSession constructs a session. If target is empty, opts.Pick chooses one.
func NewSession(target string, opts Options) (*Session, error) {
	if opts.Oracle == nil {
		return nil, errors.New("game: oracle is required")
	}
	s := &Session{
		cfg:    opts.Config.withDefaults(),
		oracle: opts.Oracle,
		ledger: opts.Ledger,
		pacer:  opts.Pacer,
		pick:   opts.Pick,
	}
	if err := s.Reset(target); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset starts a new game: new id and target, empty board and key map,
// lock cleared. An in-flight submission is cancelled and its result dropped.
// If target is empty the session's picker chooses one.
func (s *Session) Reset(target string) error {
	s.mu.Lock()
	pick := s.pick
	s.mu.Unlock()
	return s.reset(target, pick)
}

// ResetWith starts a new game like Reset and makes pick the session's
// picker from now on (e.g. switching between random and daily words).
func (s *Session) ResetWith(pick func() string) error {
	return s.reset("", pick)
}

func (s *Session) reset(target string, pick func() string) error {
	if target == "" && pick != nil {
		target = pick()
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if len(target) != s.cfg.WordLength || !isAlpha(target) {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.submitting, s.revealing, s.cancel = false, false, nil
	s.pick = pick

	s.id = randomID()
	s.target = target
	s.board = make([][]Cell, s.cfg.MaxAttempts)
	for i := range s.board {
		s.board[i] = make([]Cell, s.cfg.WordLength)
	}
	s.row, s.col = 0, 0
	s.over, s.won = false, false
	s.guesses = nil
	s.keys = KeyStatusMap{}
	s.message = ""
	return nil
}

// AddLetter writes letter into the next free tile of the current row.
// No-op (returns false) if the row is full, the game is over, the row is
// being revealed, or letter is not a–z (case-insensitive).
func (s *Session) AddLetter(letter rune) bool {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.revealing || s.col >= s.cfg.WordLength {
		return false
	}
	s.board[s.row][s.col] = Cell{Letter: string(letter), Status: StatusFilled}
	s.col++
	s.message = ""
	return true
}

// DeleteLetter clears the last filled tile of the current row.
// No-op (returns false) at column 0, when over, or while revealing.
func (s *Session) DeleteLetter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.revealing || s.col == 0 {
		return false
	}
	s.col--
	s.board[s.row][s.col] = Cell{}
	s.message = ""
	return true
}

// SubmitGuess validates and scores the current row.
//
// It blocks while the oracle is consulted and while the pacer reveals the
// row; callers that must stay responsive run it on their own goroutine.
//
// Errors:
//   - ErrGameOver, ErrSubmitInFlight: rejected, nothing changes.
//   - ErrIncompleteGuess: row not full; board and lock untouched.
//   - ErrUnknownWord, ErrOracleUnavailable: row kept for editing, lock released.
//   - ErrSessionReset: Reset ran while the guess was in flight.
func (s *Session) SubmitGuess(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	switch {
	case s.over:
		s.mu.Unlock()
		return nil, ErrGameOver
	case s.submitting:
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	case s.col < s.cfg.WordLength:
		s.message = Message(ErrIncompleteGuess)
		s.mu.Unlock()
		return nil, ErrIncompleteGuess
	}

	var b strings.Builder
	for _, c := range s.board[s.row] {
		b.WriteString(c.Letter)
	}
	guess, target, row, gen := b.String(), s.target, s.row, s.gen

	ctx, cancel := context.WithCancel(ctx)
	s.submitting, s.cancel = true, cancel
	s.mu.Unlock()

	defer s.release(gen, cancel)

	ok, err := s.oracle.IsValidWord(ctx, guess)
	if s.stale(gen) {
		return nil, ErrSessionReset
	}
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID()).Str("guess", guess).Msg("dictionary lookup failed")
		return nil, s.reject(gen, fmt.Errorf("%w: %w", ErrOracleUnavailable, err))
	}
	if !ok {
		return nil, s.reject(gen, ErrUnknownWord)
	}

	statuses := Score(guess, target)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil, ErrSessionReset
	}
	// The row may have been edited while the oracle was busy; the scored
	// guess is what stays on the board.
	for i, st := range statuses {
		s.board[row][i] = Cell{Letter: guess[i : i+1], Status: st}
		s.keys.Promote(guess[i], st)
	}
	s.col = s.cfg.WordLength
	s.revealing = true
	s.message = ""
	s.mu.Unlock()

	if s.pacer != nil {
		if err := s.pacer.Reveal(ctx, row, statuses); err != nil && !s.stale(gen) {
			log.Debug().Err(err).Str("session", s.ID()).Msg("reveal interrupted")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil, ErrSessionReset
	}
	s.revealing = false
	s.guesses = append(s.guesses, guess)
	out := &Outcome{Guess: guess, Row: row, Statuses: statuses}

	switch {
	case allCorrect(statuses):
		s.over, s.won = true, true
		out.Over, out.Won = true, true
		s.record(true, target, row+1)
	case row == s.cfg.MaxAttempts-1:
		s.over = true
		out.Over = true
		s.record(false, target, s.cfg.MaxAttempts)
	default:
		s.row++
		s.col = 0
	}
	return out, nil
}

// release drops the submission lock taken under gen. A Reset in between has
// already cleared it.
func (s *Session) release(gen uint64, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.submitting = false
		s.revealing = false
		s.cancel = nil
	}
}

// reject records the player-facing message for err.
func (s *Session) reject(gen uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return ErrSessionReset
	}
	s.message = Message(err)
	return err
}

func (s *Session) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen != gen
}

// record hands a finished game to the ledger without waiting for it.
// Called with mu held.
func (s *Session) record(won bool, target string, attempts int) {
	if s.ledger == nil {
		return
	}
	ledger, id := s.ledger, s.id
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := ledger.RecordOutcome(ctx, won, target, attempts); err != nil {
			log.Warn().Err(err).Str("session", id).Bool("won", won).Msg("record outcome")
		}
	}()
}

// ID returns the id of the current game; it changes on Reset.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Config returns the board dimensions.
func (s *Session) Config() Config { return s.cfg }

// Over reports whether the game is won or lost.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}

// Submitting reports whether the submission lock is held.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Guesses returns the accepted guesses so far.
func (s *Session) Guesses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.guesses...)
}

// Snapshot copies the renderable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := make([][]Cell, len(s.board))
	for i, r := range s.board {
		board[i] = append([]Cell(nil), r...)
	}
	snap := Snapshot{
		ID:          s.id,
		WordLength:  s.cfg.WordLength,
		MaxAttempts: s.cfg.MaxAttempts,
		Board:       board,
		Keys:        s.keys.strings(),
		Row:         s.row,
		Column:      s.col,
		Over:        s.over,
		Won:         s.won,
		Submitting:  s.submitting,
		Message:     s.message,
	}
	if s.over {
		snap.Answer = s.target
	}
	return snap
}
