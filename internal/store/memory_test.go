package store

import (
	"context"
	"errors"
	"testing"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
)

type yesOracle struct{}

func (yesOracle) IsValidWord(context.Context, string) (bool, error) { return true, nil }

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if _, err := st.Get(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() err = %v, want ErrNotFound", err)
	}

	s1, err := game.NewSession("crane", game.Options{Oracle: yesOracle{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save(ctx, "p1", s1); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, "p1")
	if err != nil || got != s1 {
		t.Fatalf("Get() = %p, %v; want %p", got, err, s1)
	}

	s2, _ := game.NewSession("slate", game.Options{Oracle: yesOracle{}})
	_ = st.Save(ctx, "p1", s2)
	if got, _ := st.Get(ctx, "p1"); got != s2 {
		t.Error("Save did not replace the previous session")
	}

	if err := st.Save(ctx, "", s1); err == nil {
		t.Error("Save without player should fail")
	}
}
