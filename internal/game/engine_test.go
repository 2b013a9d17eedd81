package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	C = StatusCorrect
	P = StatusPresent
	A = StatusAbsent
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   []Status
	}{
		{name: "exact match", guess: "crane", target: "crane", want: []Status{C, C, C, C, C}},
		{name: "no letters shared", guess: "fight", target: "crane", want: []Status{A, A, A, A, A}},
		{name: "duplicate e consumed once each", guess: "erase", target: "speed", want: []Status{P, A, A, P, P}},
		{name: "exact hits consume before presents", guess: "lllll", target: "hello", want: []Status{A, A, C, C, A}},
		{name: "present after exact", guess: "hello", target: "world", want: []Status{A, A, A, C, P}},
		{name: "anagram", guess: "nacre", target: "crane", want: []Status{P, P, P, P, C}},
		{name: "case insensitive", guess: "CRANE", target: "crane", want: []Status{C, C, C, C, C}},
		{name: "length mismatch", guess: "cran", target: "crane", want: []Status{A, A, A, A, A}},
		{name: "repeated guess letter single target letter", guess: "geese", target: "those", want: []Status{A, A, A, C, C}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.guess, tt.target)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Score(%q, %q) mismatch (-want +got)\n%s", tt.guess, tt.target, diff)
			}
		})
	}
}

func TestScoreNeverOvercreditsLetters(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	// A small alphabet makes repeated letters common.
	const alphabet = "abcde"
	word := func() string {
		var b strings.Builder
		for i := 0; i < DefaultWordLength; i++ {
			b.WriteByte(alphabet[r.Intn(len(alphabet))])
		}
		return b.String()
	}

	for i := 0; i < 5000; i++ {
		guess, target := word(), word()
		got := Score(guess, target)
		if len(got) != DefaultWordLength {
			t.Fatalf("Score(%q, %q) returned %d statuses", guess, target, len(got))
		}
		credited := map[byte]int{}
		for j, st := range got {
			if st == StatusCorrect && guess[j] != target[j] {
				t.Fatalf("Score(%q, %q)[%d] = correct for mismatched letters", guess, target, j)
			}
			if st == StatusCorrect || st == StatusPresent {
				credited[guess[j]]++
			}
		}
		for l, n := range credited {
			if have := strings.Count(target, string(l)); n > have {
				t.Fatalf("Score(%q, %q) credited %q %d times, target has %d", guess, target, l, n, have)
			}
		}
	}
}

func TestKeyStatusMapPromote(t *testing.T) {
	k := KeyStatusMap{}

	steps := []struct {
		st      Status
		changed bool
		want    Status
	}{
		{StatusFilled, false, StatusEmpty},
		{StatusAbsent, true, StatusAbsent},
		{StatusPresent, true, StatusPresent},
		{StatusAbsent, false, StatusPresent},
		{StatusCorrect, true, StatusCorrect},
		{StatusPresent, false, StatusCorrect},
		{StatusAbsent, false, StatusCorrect},
	}
	for i, s := range steps {
		if got := k.Promote('r', s.st); got != s.changed {
			t.Errorf("step %d: Promote(%q) = %v, want %v", i, s.st, got, s.changed)
		}
		if got := k['r']; got != s.want {
			t.Errorf("step %d: status = %q, want %q", i, got, s.want)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrIncompleteGuess, "Not enough letters"},
		{ErrUnknownWord, "Not in word list"},
		{ErrOracleUnavailable, "Error validating word"},
		{ErrSubmitInFlight, ""},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
