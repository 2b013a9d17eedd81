// internal/words/words.go
//
// Provides word list management for the game.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided files or fall back to the embedded assets.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply utility functions like RandomAnswer, IsAllowed, IsAnswer, and Stats.
//
// Word Lists:
//   - "answers": canonical solutions (exactly N lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Loading behavior (Load):
//   1. If WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE are both set,
//      load answers from the first and allowed guesses from the second.
//   2. If only WORDS_ALLOWED_FILE is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If neither is set, use assets/answers.txt and assets/allowed.txt.
//
// Constraints:
//   • Words must be N alphabetic letters (a–z); anything else is dropped.
//   • Lists are normalized to lowercase.
//   • The package-level list is initialized once (sync.Once).

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/JonJui02/wordle-automated-deployment/assets"
)

// Lists is a loaded pair of word lists for one word length.
type Lists struct {
	length     int
	answers    []string            // canonical answers
	allowedSet map[string]struct{} // answers ∪ guesses
	answersSet map[string]struct{} // answers only
}

// Load builds word lists for words of the given length.
// Returns an error if the answers list ends up empty.
func Load(length int) (*Lists, error) {
	var ansList, allowList []string
	var err error

	answersPath := os.Getenv("WORDS_ANSWERS_FILE")
	allowedPath := os.Getenv("WORDS_ALLOWED_FILE")

	switch {
	// Case 1: both lists provided
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: embedded assets
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("words: embedded allowed: %w", err)
		}
	}

	return New(length, ansList, allowList)
}

// New builds word lists from in-memory slices, keeping only words of the
// given length. Answers are always allowed.
func New(length int, answers, allowed []string) (*Lists, error) {
	l := &Lists{length: length}
	l.answers = filter(length, answers)
	l.answersSet = toSet(l.answers)

	l.allowedSet = toSet(l.answers)
	for _, w := range filter(length, allowed) {
		l.allowedSet[w] = struct{}{}
	}

	if len(l.answers) == 0 {
		return nil, fmt.Errorf("words: no %d-letter answers", length)
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadWords(f)
}

// filter lowercases, trims and keeps only length-letter alphabetic words.
func filter(length int, in []string) []string {
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) == length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Length returns the word length these lists were built for.
func (l *Lists) Length() int { return l.length }

// Answers returns the canonical answer list (all lowercase).
func (l *Lists) Answers() []string { return l.answers }

// RandomAnswer returns a cryptographically random answer.
func (l *Lists) RandomAnswer() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}

// --- package-level default, shared by the server and the CLI ---

var (
	initOnce   sync.Once
	defaultSet *Lists
	initialErr error
)

// Init loads the default lists exactly once. Later calls return the first
// result regardless of length.
func Init(length int) error {
	initOnce.Do(func() {
		defaultSet, initialErr = Load(length)
	})
	return initialErr
}

// Default returns the lists loaded by Init.
func Default() (*Lists, error) {
	if defaultSet == nil {
		if initialErr != nil {
			return nil, initialErr
		}
		return nil, errors.New("words: Init has not been called")
	}
	return defaultSet, nil
}
