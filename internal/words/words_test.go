package words

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFiltersByLength(t *testing.T) {
	l, err := New(5, []string{"Crane", "cat", "sl4te", " slate "}, []string{"adieu", "toolong"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if a, g := l.Stats(); a != 2 || g != 3 {
		t.Errorf("Stats() = (%d, %d), want (2, 3)", a, g)
	}
	for _, w := range []string{"crane", "SLATE", "adieu"} {
		if !l.IsAllowed(w) {
			t.Errorf("IsAllowed(%q) = false", w)
		}
	}
	if l.IsAllowed("cat") || l.IsAllowed("toolong") {
		t.Error("words of the wrong length must not be allowed")
	}
	if l.IsAnswer("adieu") {
		t.Error("allowed-only word reported as answer")
	}
	if got := l.RandomAnswer(); !l.IsAnswer(got) {
		t.Errorf("RandomAnswer() = %q, not an answer", got)
	}
}

func TestNewRequiresAnswers(t *testing.T) {
	if _, err := New(6, []string{"crane"}, nil); err == nil {
		t.Error("expected error for empty answer list")
	}
}

func TestLoadEmbedded(t *testing.T) {
	t.Setenv("WORDS_ANSWERS_FILE", "")
	t.Setenv("WORDS_ALLOWED_FILE", "")

	l, err := Load(5)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !l.IsAnswer("crane") {
		t.Error("embedded answers should include crane")
	}
	if !l.IsAllowed("adieu") {
		t.Error("embedded allowed list should include adieu")
	}
}

func TestLoadFromAllowedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("# comment\nQuart\nzebra\n\nfour\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORDS_ANSWERS_FILE", "")
	t.Setenv("WORDS_ALLOWED_FILE", path)

	l, err := Load(5)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if a, g := l.Stats(); a != 2 || g != 2 {
		t.Errorf("Stats() = (%d, %d), want (2, 2)", a, g)
	}
	if !l.IsAnswer("quart") {
		t.Error("file words should double as answers")
	}
}
