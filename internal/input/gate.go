// Package input serializes player input into a game session.
//
// Every key event, whether from an on-screen keyboard, a terminal or a
// WebSocket, goes through a Gate. The Gate drops input while the game is
// over, while input is disabled, and drops Enter while a guess is in flight.
// Dropped input is not queued.
package input

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
)

// Kind is the semantic type of a key press.
type Kind int

const (
	KindNone Kind = iota
	KindLetter
	KindDelete
	KindEnter
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLetter:
		return "Letter"
	case KindDelete:
		return "Delete"
	case KindEnter:
		return "Enter"
	default:
		return "None"
	}
}

// Action is one key press. Letter is set only for KindLetter.
type Action struct {
	Kind   Kind
	Letter rune
}

// Letter builds a letter action.
func Letter(r rune) Action { return Action{Kind: KindLetter, Letter: r} }

var (
	Delete = Action{Kind: KindDelete}
	Enter  = Action{Kind: KindEnter}
)

// Parse maps a key name to an action. It accepts single letters (any case),
// "ENTER"/"RETURN", and "BACKSPACE"/"DELETE"/"⌫". Unknown keys map to KindNone.
func Parse(key string) Action {
	switch k := strings.ToUpper(strings.TrimSpace(key)); k {
	case "ENTER", "RETURN":
		return Enter
	case "BACKSPACE", "DELETE", "⌫":
		return Delete
	default:
		if len(k) == 1 && k[0] >= 'A' && k[0] <= 'Z' {
			return Letter(rune(k[0]))
		}
	}
	return Action{}
}

// Result is what an accepted action produced. Outcome and Err are only set
// for Enter.
type Result struct {
	Changed bool
	Outcome *game.Outcome
	Err     error
}

// Gate guards one session. The zero value is not usable; see NewGate.
type Gate struct {
	s        *game.Session
	disabled atomic.Bool
}

// NewGate wraps s.
func NewGate(s *game.Session) *Gate { return &Gate{s: s} }

// Session returns the guarded session.
func (g *Gate) Session() *game.Session { return g.s }

// Disable drops all input until Enable is called (e.g. while a dialog is open).
func (g *Gate) Disable() { g.disabled.Store(true) }

// Enable re-enables input.
func (g *Gate) Enable() { g.disabled.Store(false) }

// Disabled reports whether input is currently dropped.
func (g *Gate) Disabled() bool { return g.disabled.Load() }

// Accept forwards a to the session. ok is false when the action was dropped.
// Enter blocks until the submission finishes; run it on its own goroutine
// when the caller must keep reading input.
func (g *Gate) Accept(ctx context.Context, a Action) (res Result, ok bool) {
	if g.disabled.Load() || g.s.Over() {
		return Result{}, false
	}
	switch a.Kind {
	case KindLetter:
		return Result{Changed: g.s.AddLetter(a.Letter)}, true
	case KindDelete:
		return Result{Changed: g.s.DeleteLetter()}, true
	case KindEnter:
		if g.s.Submitting() {
			return Result{}, false
		}
		out, err := g.s.SubmitGuess(ctx)
		// Lost a race with another Enter or with the end of the game.
		if errors.Is(err, game.ErrSubmitInFlight) || errors.Is(err, game.ErrGameOver) {
			return Result{}, false
		}
		return Result{Changed: out != nil, Outcome: out, Err: err}, true
	}
	return Result{}, false
}
