package stats

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
)

// PlayerLedger records a single player's finished games into a Store.
// It satisfies game.Ledger.
type PlayerLedger struct {
	Store  Store
	Player string
	Now    func() time.Time
}

// RecordOutcome implements game.Ledger.
func (l PlayerLedger) RecordOutcome(ctx context.Context, won bool, target string, attempts int) error {
	o := Outcome{Player: l.Player, Won: won, Target: target, Attempts: attempts}
	if l.Now != nil {
		o.At = l.Now()
	}
	_, err := l.Store.Record(ctx, o)
	return err
}

// Multi writes locally first, then mirrors to an optional remote ledger.
// Only the local error is returned; remote failures are logged.
type Multi struct {
	Local  game.Ledger
	Remote game.Ledger
}

// RecordOutcome implements game.Ledger.
func (m Multi) RecordOutcome(ctx context.Context, won bool, target string, attempts int) error {
	err := m.Local.RecordOutcome(ctx, won, target, attempts)
	if m.Remote != nil {
		if rerr := m.Remote.RecordOutcome(ctx, won, target, attempts); rerr != nil {
			log.Warn().Err(rerr).Msg("stats: remote sync failed")
		}
	}
	return err
}
