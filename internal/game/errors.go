package game

import "errors"

var (
	// ErrIncompleteGuess: the current row is not full.
	ErrIncompleteGuess = errors.New("game: not enough letters")
	// ErrUnknownWord: the oracle does not recognise the guess.
	ErrUnknownWord = errors.New("game: not in word list")
	// ErrOracleUnavailable: the oracle call itself failed.
	ErrOracleUnavailable = errors.New("game: dictionary unavailable")
	// ErrGameOver: the session is won or lost and must be reset.
	ErrGameOver = errors.New("game: game over")
	// ErrSubmitInFlight: another guess holds the submission lock.
	ErrSubmitInFlight = errors.New("game: submission in progress")
	// ErrSessionReset: the session was reset while this guess was in flight.
	ErrSessionReset = errors.New("game: session was reset")
	// ErrInvalidTarget: the target is not WordLength lowercase letters.
	ErrInvalidTarget = errors.New("game: invalid target word")
)

// Message maps an error to the text shown to the player.
// Errors the player never needs to see map to "".
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncompleteGuess):
		return "Not enough letters"
	case errors.Is(err, ErrUnknownWord):
		return "Not in word list"
	case errors.Is(err, ErrOracleUnavailable):
		return "Error validating word"
	}
	return ""
}
