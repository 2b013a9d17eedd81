// Package tui is the terminal front-end: a Bubble Tea model that drives one
// game session through an input gate, locally or over SSH.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/input"
	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
)

// statsWait bounds how long the end screen waits for the ledger write.
const statsWait = 2 * time.Second

// Options configure a Model.
type Options struct {
	Game   game.Options // Ledger is wrapped so the end screen sees the write
	Stats  stats.Store  // optional; source of end-of-game counters
	Player string
	Label  string // shown under the title, e.g. the daily date

	Context  context.Context    // cancels in-flight guesses; defaults to Background
	Renderer *lipgloss.Renderer // defaults to lipgloss.DefaultRenderer()
}

// Model is the Bubble Tea model for one player.
type Model struct {
	ctx      context.Context
	gate     *input.Gate
	recorded chan struct{}
	stats    stats.Store
	player   string
	label    string

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  styles

	showHelp  bool
	finished  *stats.Stats
	quitting  bool
	width     int
	height    int
	lastError error
}

// submitDoneMsg carries the result of an Enter run off the update loop.
type submitDoneMsg struct {
	res input.Result
	ok  bool
}

// statsMsg carries counters loaded after a game ends.
type statsMsg struct {
	stats stats.Stats
	err   error
}

// notifyLedger signals recorded after every write to next.
type notifyLedger struct {
	next     game.Ledger
	recorded chan<- struct{}
}

func (l notifyLedger) RecordOutcome(ctx context.Context, won bool, target string, attempts int) error {
	defer func() {
		select {
		case l.recorded <- struct{}{}:
		default:
		}
	}()
	if l.next == nil {
		return nil
	}
	return l.next.RecordOutcome(ctx, won, target, attempts)
}

// New creates a model with a fresh session.
func New(opts Options) (*Model, error) {
	recorded := make(chan struct{}, 1)
	gopts := opts.Game
	gopts.Ledger = notifyLedger{next: gopts.Ledger, recorded: recorded}

	s, err := game.NewSession("", gopts)
	if err != nil {
		return nil, err
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return &Model{
		ctx:      ctx,
		gate:     input.NewGate(s),
		recorded: recorded,
		stats:    opts.Stats,
		player:   opts.Player,
		label:    opts.Label,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		styles:   newStyles(r),
	}, nil
}

// Session returns the model's game session.
func (m *Model) Session() *game.Session { return m.gate.Session() }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case submitDoneMsg:
		// Rejections surface through the session's message.
		if msg.res.Outcome != nil && msg.res.Outcome.Over {
			return m, m.loadStats()
		}
		return m, nil

	case statsMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("player", m.player).Msg("load stats")
			return m, nil
		}
		st := msg.stats
		m.finished = &st
		return m, nil

	case spinner.TickMsg:
		if !m.Session().Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		if m.showHelp {
			m.gate.Disable()
		} else {
			m.gate.Enable()
		}
		return m, nil

	case key.Matches(msg, m.keys.NewGame):
		if err := m.Session().Reset(""); err != nil {
			m.lastError = err
			return m, nil
		}
		m.drainRecorded()
		m.finished, m.lastError = nil, nil
		return m, nil
	}

	a := m.keys.action(msg)
	switch a.Kind {
	case input.KindNone:
		return m, nil
	case input.KindEnter:
		if m.gate.Disabled() || m.Session().Over() || m.Session().Submitting() {
			return m, nil
		}
		return m, tea.Batch(m.submit(), m.spinner.Tick)
	default:
		m.gate.Accept(m.ctx, a)
		return m, nil
	}
}

// submit runs Enter through the gate off the update loop.
func (m *Model) submit() tea.Cmd {
	gate, ctx := m.gate, m.ctx
	return func() tea.Msg {
		res, ok := gate.Accept(ctx, input.Enter)
		return submitDoneMsg{res: res, ok: ok}
	}
}

// loadStats waits for the ledger write, then reads the player's counters.
func (m *Model) loadStats() tea.Cmd {
	if m.stats == nil {
		return nil
	}
	store, player, recorded, ctx := m.stats, m.player, m.recorded, m.ctx
	return func() tea.Msg {
		select {
		case <-recorded:
		case <-time.After(statsWait):
		case <-ctx.Done():
		}
		st, err := store.Stats(ctx, player)
		return statsMsg{stats: st, err: err}
	}
}

// drainRecorded drops a stale "recorded" signal from the previous game.
func (m *Model) drainRecorded() {
	select {
	case <-m.recorded:
	default:
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.Session().Snapshot()
	st := m.styles

	parts := []string{
		st.title.Render("W O R D L E"),
	}
	if m.label != "" {
		parts = append(parts, st.dim.Render(m.label))
	}
	parts = append(parts, st.renderBoard(snap), "")

	switch {
	case snap.Submitting:
		parts = append(parts, m.spinner.View()+" checking…")
	case m.lastError != nil:
		parts = append(parts, st.message.Render(m.lastError.Error()))
	case snap.Message != "":
		parts = append(parts, st.message.Render(snap.Message))
	default:
		parts = append(parts, "")
	}

	parts = append(parts, st.renderKeyboard(snap.Keys))

	if snap.Over {
		parts = append(parts, st.banner.Render(bannerText(snap)))
		if m.finished != nil {
			parts = append(parts, st.renderStats(*m.finished))
		}
		parts = append(parts, st.dim.Render("ctrl+n for a new game"))
	}

	parts = append(parts, "", m.help.View(m.keys))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}
