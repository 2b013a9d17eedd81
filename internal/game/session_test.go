package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeOracle accepts every word unless listed in reject. If hold is set,
// every lookup signals entered and then waits for hold (or ctx).
type fakeOracle struct {
	reject  map[string]bool
	err     error
	hold    chan struct{}
	entered chan string
	calls   atomic.Int32
}

func (o *fakeOracle) IsValidWord(ctx context.Context, word string) (bool, error) {
	o.calls.Add(1)
	if o.entered != nil {
		o.entered <- word
	}
	if o.hold != nil {
		select {
		case <-o.hold:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	if o.err != nil {
		return false, o.err
	}
	return !o.reject[word], nil
}

type outcome struct {
	won      bool
	target   string
	attempts int
}

type recordingLedger struct {
	mu   sync.Mutex
	got  []outcome
	done chan struct{}
}

func newRecordingLedger() *recordingLedger {
	return &recordingLedger{done: make(chan struct{}, 16)}
}

func (l *recordingLedger) RecordOutcome(_ context.Context, won bool, target string, attempts int) error {
	l.mu.Lock()
	l.got = append(l.got, outcome{won, target, attempts})
	l.mu.Unlock()
	l.done <- struct{}{}
	return nil
}

func (l *recordingLedger) wait(t *testing.T) []outcome {
	t.Helper()
	select {
	case <-l.done:
	case <-time.After(2 * time.Second):
		t.Fatal("ledger was not called")
	}
	// Give a duplicate call a chance to show up.
	time.Sleep(20 * time.Millisecond)
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]outcome(nil), l.got...)
}

func newTestSession(t *testing.T, target string, o Oracle, l Ledger) *Session {
	t.Helper()
	s, err := NewSession(target, Options{Oracle: o, Ledger: l})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func typeWord(t *testing.T, s *Session, w string) {
	t.Helper()
	for _, r := range w {
		if !s.AddLetter(r) {
			t.Fatalf("AddLetter(%q) rejected", r)
		}
	}
}

func TestNewSessionValidatesTarget(t *testing.T) {
	o := &fakeOracle{}
	if _, err := NewSession("cran", Options{Oracle: o}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("short target: err = %v, want ErrInvalidTarget", err)
	}
	if _, err := NewSession("cr4ne", Options{Oracle: o}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("non-alpha target: err = %v, want ErrInvalidTarget", err)
	}
	if _, err := NewSession("crane", Options{}); err == nil {
		t.Error("missing oracle: expected error")
	}
	s, err := NewSession("", Options{Oracle: o, Pick: func() string { return "SLATE" }})
	if err != nil {
		t.Fatalf("NewSession with picker failed: %v", err)
	}
	if _, err := s.SubmitGuess(context.Background()); !errors.Is(err, ErrIncompleteGuess) {
		t.Errorf("empty row: err = %v, want ErrIncompleteGuess", err)
	}
}

func TestResetWithSwitchesPicker(t *testing.T) {
	s, err := NewSession("", Options{Oracle: &fakeOracle{}, Pick: func() string { return "slate" }})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ResetWith(func() string { return "crane" }); err != nil {
		t.Fatalf("ResetWith() failed: %v", err)
	}
	// Plain resets keep drawing from the new picker.
	for i := 0; i < 2; i++ {
		typeWord(t, s, "crane")
		out, err := s.SubmitGuess(context.Background())
		if err != nil || !out.Won {
			t.Fatalf("round %d: out=%+v err=%v", i, out, err)
		}
		if err := s.Reset(""); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.ResetWith(nil); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("nil picker: err = %v, want ErrInvalidTarget", err)
	}
}

func TestAddAndDeleteLetters(t *testing.T) {
	s := newTestSession(t, "crane", &fakeOracle{}, nil)

	if s.DeleteLetter() {
		t.Error("DeleteLetter on empty row should be a no-op")
	}
	if s.AddLetter('1') {
		t.Error("AddLetter('1') should be rejected")
	}
	typeWord(t, s, "Hello")
	if s.AddLetter('x') {
		t.Error("AddLetter on full row should be a no-op")
	}
	if !s.DeleteLetter() {
		t.Fatal("DeleteLetter on full row failed")
	}

	snap := s.Snapshot()
	want := []Cell{
		{"h", StatusFilled}, {"e", StatusFilled}, {"l", StatusFilled}, {"l", StatusFilled}, {},
	}
	if diff := cmp.Diff(want, snap.Board[0]); diff != "" {
		t.Errorf("row 0 mismatch (-want +got)\n%s", diff)
	}
	if snap.Column != 4 || snap.Row != 0 {
		t.Errorf("cursor = (%d,%d), want (0,4)", snap.Row, snap.Column)
	}
}

func TestWinRecordsOutcomeOnce(t *testing.T) {
	l := newRecordingLedger()
	s := newTestSession(t, "crane", &fakeOracle{}, l)

	typeWord(t, s, "CRANE")
	out, err := s.SubmitGuess(context.Background())
	if err != nil {
		t.Fatalf("SubmitGuess() failed: %v", err)
	}
	if diff := cmp.Diff([]Status{C, C, C, C, C}, out.Statuses); diff != "" {
		t.Errorf("statuses mismatch (-want +got)\n%s", diff)
	}
	if !out.Won || !out.Over {
		t.Errorf("outcome = %+v, want won and over", out)
	}

	snap := s.Snapshot()
	if !snap.Over || !snap.Won || snap.Answer != "crane" || snap.Submitting {
		t.Errorf("snapshot after win = %+v", snap)
	}

	if _, err := s.SubmitGuess(context.Background()); !errors.Is(err, ErrGameOver) {
		t.Errorf("submit after win: err = %v, want ErrGameOver", err)
	}
	if s.AddLetter('a') || s.DeleteLetter() {
		t.Error("letters must not change after the game is over")
	}

	got := l.wait(t)
	if diff := cmp.Diff([]outcome{{true, "crane", 1}}, got, cmp.AllowUnexported(outcome{})); diff != "" {
		t.Errorf("ledger calls mismatch (-want +got)\n%s", diff)
	}
}

func TestLossAfterMaxAttempts(t *testing.T) {
	l := newRecordingLedger()
	s := newTestSession(t, "crane", &fakeOracle{}, l)

	guesses := []string{"fight", "jumpy", "world", "boxes", "lucky", "pinto"}
	for i, g := range guesses {
		typeWord(t, s, g)
		out, err := s.SubmitGuess(context.Background())
		if err != nil {
			t.Fatalf("guess %d: SubmitGuess() failed: %v", i+1, err)
		}
		last := i == len(guesses)-1
		if out.Over != last || out.Won {
			t.Fatalf("guess %d: outcome = %+v", i+1, out)
		}
		if !last && s.Snapshot().Row != i+1 {
			t.Fatalf("guess %d: row = %d, want %d", i+1, s.Snapshot().Row, i+1)
		}
	}

	snap := s.Snapshot()
	if !snap.Over || snap.Won {
		t.Errorf("snapshot after loss: over=%v won=%v", snap.Over, snap.Won)
	}
	if snap.Row != DefaultMaxAttempts-1 {
		t.Errorf("row after loss = %d, want %d", snap.Row, DefaultMaxAttempts-1)
	}

	got := l.wait(t)
	if diff := cmp.Diff([]outcome{{false, "crane", 6}}, got, cmp.AllowUnexported(outcome{})); diff != "" {
		t.Errorf("ledger calls mismatch (-want +got)\n%s", diff)
	}
	if diff := cmp.Diff(guesses, s.Guesses()); diff != "" {
		t.Errorf("guesses mismatch (-want +got)\n%s", diff)
	}
}

func TestIncompleteGuessChangesNothing(t *testing.T) {
	o := &fakeOracle{}
	s := newTestSession(t, "crane", o, nil)

	typeWord(t, s, "cra")
	before := s.Snapshot()

	if _, err := s.SubmitGuess(context.Background()); !errors.Is(err, ErrIncompleteGuess) {
		t.Fatalf("err = %v, want ErrIncompleteGuess", err)
	}

	after := s.Snapshot()
	if after.Message != "Not enough letters" {
		t.Errorf("message = %q", after.Message)
	}
	after.Message = ""
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("state changed (-before +after)\n%s", diff)
	}
	if o.calls.Load() != 0 {
		t.Errorf("oracle called %d times", o.calls.Load())
	}
}

func TestUnknownWordKeepsRow(t *testing.T) {
	o := &fakeOracle{reject: map[string]bool{"crnae": true}}
	s := newTestSession(t, "crane", o, nil)

	typeWord(t, s, "crnae")
	if _, err := s.SubmitGuess(context.Background()); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("err = %v, want ErrUnknownWord", err)
	}
	snap := s.Snapshot()
	if snap.Row != 0 || snap.Column != 5 || snap.Submitting {
		t.Errorf("after rejection: row=%d col=%d submitting=%v", snap.Row, snap.Column, snap.Submitting)
	}
	if snap.Message != "Not in word list" {
		t.Errorf("message = %q", snap.Message)
	}
	for i, c := range snap.Board[0] {
		if c.Status != StatusFilled {
			t.Errorf("tile %d status = %q, want filled", i, c.Status)
		}
	}
	if len(snap.Keys) != 0 {
		t.Errorf("keys = %v, want none", snap.Keys)
	}

	// Edit and resubmit the same row.
	for i := 0; i < 3; i++ {
		s.DeleteLetter()
	}
	typeWord(t, s, "ane")
	out, err := s.SubmitGuess(context.Background())
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if !out.Won {
		t.Errorf("resubmitted outcome = %+v, want win", out)
	}
}

func TestOracleErrorReleasesLock(t *testing.T) {
	cause := errors.New("connection refused")
	o := &fakeOracle{err: cause}
	s := newTestSession(t, "crane", o, nil)

	typeWord(t, s, "slate")
	_, err := s.SubmitGuess(context.Background())
	if !errors.Is(err, ErrOracleUnavailable) || !errors.Is(err, cause) {
		t.Fatalf("err = %v, want ErrOracleUnavailable wrapping cause", err)
	}
	snap := s.Snapshot()
	if snap.Submitting || snap.Row != 0 || snap.Column != 5 {
		t.Errorf("after error: %+v", snap)
	}
	if snap.Message != "Error validating word" {
		t.Errorf("message = %q", snap.Message)
	}

	o.err = nil
	if _, err := s.SubmitGuess(context.Background()); err != nil {
		t.Errorf("retry failed: %v", err)
	}
}

func TestKeyStatusesOnlyImprove(t *testing.T) {
	s := newTestSession(t, "crane", &fakeOracle{}, nil)

	submit := func(w string) {
		t.Helper()
		typeWord(t, s, w)
		if _, err := s.SubmitGuess(context.Background()); err != nil {
			t.Fatalf("SubmitGuess(%q) failed: %v", w, err)
		}
	}

	submit("rebus")
	if got := s.Snapshot().Keys["r"]; got != StatusPresent {
		t.Fatalf("after rebus: r = %q, want present", got)
	}
	submit("brand")
	if got := s.Snapshot().Keys["r"]; got != StatusCorrect {
		t.Fatalf("after brand: r = %q, want correct", got)
	}
	submit("rerun") // scores r as present and absent
	keys := s.Snapshot().Keys
	if keys["r"] != StatusCorrect {
		t.Errorf("after rerun: r = %q, want correct", keys["r"])
	}
	if keys["b"] != StatusAbsent || keys["n"] != StatusCorrect || keys["e"] != StatusPresent {
		t.Errorf("keys = %v", keys)
	}
}

func TestSecondSubmitWhileInFlight(t *testing.T) {
	o := &fakeOracle{hold: make(chan struct{}), entered: make(chan string, 1)}
	s := newTestSession(t, "crane", o, nil)
	typeWord(t, s, "crane")

	type result struct {
		out *Outcome
		err error
	}
	first := make(chan result, 1)
	go func() {
		out, err := s.SubmitGuess(context.Background())
		first <- result{out, err}
	}()
	<-o.entered

	if !s.Submitting() {
		t.Fatal("lock not held while oracle is busy")
	}
	if _, err := s.SubmitGuess(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("second submit: err = %v, want ErrSubmitInFlight", err)
	}
	// Typing stays live; the scored guess wins over the edit.
	if !s.DeleteLetter() {
		t.Error("DeleteLetter blocked by in-flight submission")
	}

	close(o.hold)
	r := <-first
	if r.err != nil || !r.out.Won {
		t.Fatalf("first submit = %+v, %v", r.out, r.err)
	}
	if n := o.calls.Load(); n != 1 {
		t.Errorf("oracle calls = %d, want 1", n)
	}
	if got := s.Snapshot().Board[0][4]; got != (Cell{"e", StatusCorrect}) {
		t.Errorf("last tile = %+v", got)
	}
	if s.Submitting() {
		t.Error("lock still held after submission finished")
	}
}

func TestResetCancelsInFlightSubmission(t *testing.T) {
	o := &fakeOracle{hold: make(chan struct{}), entered: make(chan string, 1)}
	l := newRecordingLedger()
	s := newTestSession(t, "crane", o, l)
	typeWord(t, s, "crane")

	errc := make(chan error, 1)
	go func() {
		_, err := s.SubmitGuess(context.Background())
		errc <- err
	}()
	<-o.entered
	oldID := s.ID()

	if err := s.Reset("slate"); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if err := <-errc; !errors.Is(err, ErrSessionReset) {
		t.Errorf("in-flight submit: err = %v, want ErrSessionReset", err)
	}

	snap := s.Snapshot()
	if snap.ID == oldID || snap.Submitting || snap.Over || snap.Row != 0 || snap.Column != 0 || len(snap.Keys) != 0 {
		t.Errorf("snapshot after reset = %+v", snap)
	}
	select {
	case <-l.done:
		t.Error("cancelled submission reached the ledger")
	case <-time.After(20 * time.Millisecond):
	}
}

type observingPacer struct {
	s      *Session
	seen   Snapshot
	edited bool
}

func (p *observingPacer) Reveal(ctx context.Context, row int, st []Status) error {
	p.seen = p.s.Snapshot()
	p.edited = p.s.DeleteLetter() || p.s.AddLetter('x')
	return nil
}

func TestLockSpansReveal(t *testing.T) {
	p := &observingPacer{}
	s, err := NewSession("crane", Options{Oracle: &fakeOracle{}, Pacer: p})
	if err != nil {
		t.Fatal(err)
	}
	p.s = s

	typeWord(t, s, "slate")
	if _, err := s.SubmitGuess(context.Background()); err != nil {
		t.Fatalf("SubmitGuess() failed: %v", err)
	}
	if !p.seen.Submitting {
		t.Error("lock released before reveal")
	}
	if p.edited {
		t.Error("row edited during reveal")
	}
	if p.seen.Row != 0 {
		t.Errorf("row advanced before reveal: %d", p.seen.Row)
	}
	if got := p.seen.Board[0][2].Status; got != StatusCorrect {
		t.Errorf("tile 2 during reveal = %q, want correct", got)
	}
	snap := s.Snapshot()
	if snap.Submitting || snap.Row != 1 || snap.Column != 0 {
		t.Errorf("after reveal: %+v", snap)
	}
	if got := snap.Board[0][0]; got != (Cell{"s", StatusAbsent}) {
		t.Errorf("tile 0 = %+v, want scored s", got)
	}
}

func TestDelayPacer(t *testing.T) {
	if err := Delay(0).Reveal(context.Background(), 0, nil); err != nil {
		t.Errorf("zero delay: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Delay(time.Hour).Reveal(ctx, 0, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled delay: err = %v", err)
	}
}
