// internal/game/engine.go
//
// Scoring for a single guess.
// Responsibilities:
//   - Score guesses using the classic two‑pass Wordle algorithm.
//   - Small helpers shared by the session state machine (letter checks, ids).
//
// Score is pure: no state, no I/O.
package game

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Score compares guess against target and returns one status per position.
//
// Pass 1:
//   - Mark exact matches as correct and consume that target letter.
//
// Pass 2:
//   - For each remaining guess letter, claim the first unconsumed occurrence
//     in the target: mark present and consume it; otherwise absent.
//
// A target letter is credited at most once across both passes, so repeated
// letters in the guess or the target are handled correctly.
// If the lengths differ the result is all absent (len(target) entries).
func Score(guess, target string) []Status {
	n := len(target)
	res := make([]Status, n)
	for i := range res {
		res[i] = StatusAbsent
	}
	if len(guess) != n {
		return res
	}
	g := []byte(strings.ToLower(guess))
	remaining := []byte(strings.ToLower(target))

	// First pass: exact positions.
	for i := 0; i < n; i++ {
		if g[i] == remaining[i] {
			res[i] = StatusCorrect
			remaining[i] = 0
		}
	}

	// Second pass: misplaced letters.
	for i := 0; i < n; i++ {
		if res[i] == StatusCorrect {
			continue
		}
		if j := bytes.IndexByte(remaining, g[i]); j >= 0 {
			res[i] = StatusPresent
			remaining[j] = 0
		}
	}
	return res
}

// allCorrect returns true if every status is correct.
func allCorrect(st []Status) bool {
	for _, s := range st {
		if s != StatusCorrect {
			return false
		}
	}
	return true
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
